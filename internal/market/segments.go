package market

// Market segment identifiers. Segments order roughly from pure technical (1)
// to pure luxury fashion (7).
const (
	SegmentCoreTechnical    = 1
	SegmentOutdoorTechnical = 2
	SegmentAthleisure       = 3
	SegmentLuxuryActivewear = 4
	SegmentAthluxury        = 5
	SegmentHPLuxury         = 6
	SegmentLuxuryFashion    = 7
)

var segmentNames = map[int]string{
	SegmentCoreTechnical:    "Core Technical Sportswear",
	SegmentOutdoorTechnical: "Outdoor Technical Sportswear",
	SegmentAthleisure:       "Athleisure",
	SegmentLuxuryActivewear: "Luxury Activewear",
	SegmentAthluxury:        "Athluxury",
	SegmentHPLuxury:         "High-Performance Luxury",
	SegmentLuxuryFashion:    "Luxury Fashion",
}

// SegmentName returns the display name of a segment id.
func SegmentName(id int) string {
	return segmentNames[id]
}

// SegmentIDs returns all segment ids in ascending order.
func SegmentIDs() []int {
	return []int{1, 2, 3, 4, 5, 6, 7}
}

// segmentPositioning places each segment on the fashion/function plane.
// Used to derive a brand's appetite for moving into High-Performance Luxury.
type segmentPositioning struct {
	Fashion  float64
	Function float64
}

var segmentScores = map[int]segmentPositioning{
	SegmentCoreTechnical:    {Fashion: 0.2, Function: 1.0},
	SegmentOutdoorTechnical: {Fashion: 0.4, Function: 0.8},
	SegmentAthleisure:       {Fashion: 0.6, Function: 0.4},
	SegmentLuxuryActivewear: {Fashion: 0.4, Function: 0.8},
	SegmentAthluxury:        {Fashion: 0.8, Function: 0.4},
	SegmentHPLuxury:         {Fashion: 0.8, Function: 0.8},
	SegmentLuxuryFashion:    {Fashion: 1.0, Function: 0.2},
}

// FashionScore returns a segment's fashion positioning in [0,1].
func FashionScore(id int) float64 {
	return segmentScores[id].Fashion
}

// FunctionScore returns a segment's functional positioning in [0,1].
func FunctionScore(id int) float64 {
	return segmentScores[id].Function
}
