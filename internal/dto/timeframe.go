package dto

type Timeframe struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Days  int    `json:"days"`
}

const DefaultTimeframe = "30d"

var Timeframes = []Timeframe{
	{Label: "10D", Value: "10d", Days: 10},
	{Label: "30D", Value: "30d", Days: 30},
	{Label: "3M", Value: "3m", Days: 90},
	{Label: "6M", Value: "6m", Days: 180},
	{Label: "1Y", Value: "1y", Days: 365},
	{Label: "3Y", Value: "3y", Days: 1095},
}

// ParseTimeframe looks value up in Timeframes. An empty value selects the
// default.
func ParseTimeframe(value string) (Timeframe, bool) {
	if value == "" {
		value = DefaultTimeframe
	}
	for _, tf := range Timeframes {
		if tf.Value == value {
			return tf, true
		}
	}
	return Timeframe{}, false
}
