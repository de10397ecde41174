package optfolio

import "testing"

func TestDecodeDescription(t *testing.T) {
	tests := []struct {
		in   string
		want DecodedDescription
	}{
		{
			"AAPL 01/19/2024 Call $150",
			DecodedDescription{Instrument: "AAPL", Expiry: "01/19/2024", OptionType: "Call", Strike: "150"},
		},
		{
			"TSLA 2024-02-16 put 200.5",
			DecodedDescription{Instrument: "TSLA", Expiry: "2024-02-16", OptionType: "put", Strike: "200.5"},
		},
		{
			// extra tokens are discarded, last numeric token wins the strike
			"SPY weekly 03/15/2024 Put $400 $410",
			DecodedDescription{Instrument: "SPY", Expiry: "03/15/2024", OptionType: "Put", Strike: "410"},
		},
		{
			// first token containing a slash wins the expiry
			"QQQ 01/19/2024 02/16/2024 Call 380",
			DecodedDescription{Instrument: "QQQ", Expiry: "01/19/2024", OptionType: "Call", Strike: "380"},
		},
	}
	for _, tt := range tests {
		if got := DecodeDescription(tt.in); got != tt.want {
			t.Errorf("DecodeDescription(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestDecodeDescription_Incomplete(t *testing.T) {
	tests := []string{
		"AAPL Call $150",      // no expiry
		"AAPL 01/19/2024 150", // no type
		"AAPL 01/19/2024 Put", // no strike
		"",
	}
	for _, in := range tests {
		if d := DecodeDescription(in); d.Complete() {
			t.Errorf("DecodeDescription(%q) = %+v, should be incomplete", in, d)
		}
	}
}
