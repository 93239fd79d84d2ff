package evaluator

// Strength maps a hand rank to a normalized strength in [0,1] plus the
// category label. This is the single source of truth for strength
// normalization: the AI strategies and post-hand analysis both call it, and
// nothing else may reimplement the mapping.
func Strength(rank HandRank) (float64, string) {
	cat := rank.Category()
	floor, ceil := categoryBand[cat][0], categoryBand[cat][1]

	// Position within the category, driven by the primary tiebreak rank.
	primary := float64((rank >> 16) & 0xF)
	within := primary / 12.0

	return floor + (ceil-floor)*within, cat.String()
}

// categoryBand assigns each category a [floor, ceil] band of the strength
// scale. Bands are tied to category boundaries: any hand of a stronger
// category maps above any hand of a weaker one.
var categoryBand = [StraightFlush + 1][2]float64{
	HighCard:      {0.05, 0.25},
	Pair:          {0.25, 0.45},
	TwoPair:       {0.45, 0.60},
	ThreeOfAKind:  {0.60, 0.70},
	Straight:      {0.70, 0.78},
	Flush:         {0.78, 0.85},
	FullHouse:     {0.85, 0.92},
	FourOfAKind:   {0.92, 0.97},
	StraightFlush: {0.97, 1.00},
}
