package volleyball

import "math"

// DefaultStats is the fixed table of stats offered by the court tracker.
var DefaultStats = []Stat{
	{Key: Kills, Label: "Attack"},
	{Key: BlockMultiple, Label: "Block"},
	{Key: Digs, Label: "Dig"},
	{Key: SetAssists, Label: "Set"},
	{Key: ServeAces, Label: "Ace"},
}

var allKeys = []StatKey{
	Kills, AttackErrors, AttackAttempts,
	ServeAces, ServeErrors, ServeAttempts,
	ReceivePerfect, ReceivePositive, ReceiveNegative, ReceiveError, ReceiveAttempts,
	SetAssists, SetErrors,
	Digs, DigErrors,
	BlockSingle, BlockMultiple, BlockErrors,
	SetsPlayed,
}

// Keys returns every counter key in column order.
func Keys() []StatKey {
	keys := make([]StatKey, len(allKeys))
	copy(keys, allKeys)
	return keys
}

// ParseStatKey validates a raw key.
func ParseStatKey(raw string) (StatKey, error) {
	key := StatKey(raw)
	var c Counters
	if c.Field(key) == nil {
		return "", ErrUnknownStatKey
	}
	return key, nil
}

// Field returns a pointer to the counter named key, or nil for unknown keys.
func (c *Counters) Field(key StatKey) *int {
	switch key {
	case Kills:
		return &c.Kills
	case AttackErrors:
		return &c.AttackErrors
	case AttackAttempts:
		return &c.AttackAttempts
	case ServeAces:
		return &c.ServeAces
	case ServeErrors:
		return &c.ServeErrors
	case ServeAttempts:
		return &c.ServeAttempts
	case ReceivePerfect:
		return &c.ReceivePerfect
	case ReceivePositive:
		return &c.ReceivePositive
	case ReceiveNegative:
		return &c.ReceiveNegative
	case ReceiveError:
		return &c.ReceiveError
	case ReceiveAttempts:
		return &c.ReceiveAttempts
	case SetAssists:
		return &c.SetAssists
	case SetErrors:
		return &c.SetErrors
	case Digs:
		return &c.Digs
	case DigErrors:
		return &c.DigErrors
	case BlockSingle:
		return &c.BlockSingle
	case BlockMultiple:
		return &c.BlockMultiple
	case BlockErrors:
		return &c.BlockErrors
	case SetsPlayed:
		return &c.SetsPlayed
	}
	return nil
}

// Get returns the value of a counter.
func (c Counters) Get(key StatKey) (int, error) {
	p := c.Field(key)
	if p == nil {
		return 0, ErrUnknownStatKey
	}
	return *p, nil
}

// Set overwrites a counter. Negative values are stored as 0.
func (c *Counters) Set(key StatKey, value int) error {
	p := c.Field(key)
	if p == nil {
		return ErrUnknownStatKey
	}
	*p = max(value, 0)
	return nil
}

// Add returns a new Counters with every tally of o added.
func (c Counters) Add(o Counters) Counters {
	for _, key := range allKeys {
		*c.Field(key) += *o.Field(key)
	}
	return c
}

// Blocks is the sum of single and multiple blocks.
func (c Counters) Blocks() int {
	return c.BlockSingle + c.BlockMultiple
}

// Points counts the rallies won directly by the player.
func (c Counters) Points() int {
	return c.Kills + c.Blocks() + c.ServeAces
}

// Errors counts every error tally.
func (c Counters) Errors() int {
	return c.AttackErrors + c.ServeErrors + c.ReceiveError + c.SetErrors + c.DigErrors + c.BlockErrors
}

// Derive computes the per-player percentages. A zero denominator yields 0.
func (c Counters) Derive() Derived {
	return Derived{
		AttackEfficiency: Ratio(c.Kills-c.AttackErrors, c.AttackAttempts),
		KillsPerSet:      Ratio(c.Kills, c.SetsPlayed),
		ServeEfficiency:  Ratio(c.ServeAces-c.ServeErrors, c.ServeAttempts),
		ServePercentage:  Percentage(c.ServeAttempts-c.ServeErrors, c.ServeAttempts),
		ReceiveRating:    Ratio(c.ReceivePerfect*3+c.ReceivePositive*2+c.ReceiveNegative, c.ReceiveAttempts),
		BlocksPerSet:     Ratio(c.Blocks(), c.SetsPlayed),
	}
}

// Ratio divides and rounds to two decimals.
func Ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return Round2(float64(num) / float64(den))
}

// Percentage is num/den scaled to 100 and rounded to two decimals.
func Percentage(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return Round2(float64(num) / float64(den) * 100)
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
