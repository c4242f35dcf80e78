package playlist

import "testing"

const sampleM3U = `#EXTM3U
#EXTINF:-1 tvg-id="SunTV.in@HD" tvg-name="Sun TV" group-title="Tamil, South",Sun TV HD
https://cdn.example.com/suntv/index.m3u8
#EXTINF:-1 tvg-id="MaaTV.in" tvg-language="Telugu",Maa TV
http://cdn.example.com/maatv/index.m3u8

#EXTVLCOPT:http-user-agent=Player/1.0
#EXTINF:-1,Bare Channel
https://cdn.example.com/bare/index.m3u8
#EXTINF:-1 tvg-id="Bad.in",Bad Scheme
file:///etc/passwd
`

func TestParseBytes(t *testing.T) {
	channels, err := ParseBytes([]byte(sampleM3U))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	if len(channels) != 3 {
		t.Fatalf("len = %d, want 3 (file:// entry dropped): %+v", len(channels), channels)
	}

	c := channels[0]
	if c.ID != "SunTV.in@HD" || c.TVGID != "SunTV.in@HD" || c.Name != "Sun TV HD" {
		t.Errorf("first channel = %+v", c)
	}
	if c.Language != "" {
		t.Errorf("first channel language = %q, want empty (no tvg-language)", c.Language)
	}

	c = channels[1]
	if c.Name != "Maa TV" || c.Language != "te" {
		t.Errorf("second channel = %+v, want name Maa TV, language te", c)
	}

	c = channels[2]
	if c.Name != "Bare Channel" {
		t.Errorf("third channel name = %q", c.Name)
	}
	if c.ID != "ch_3" {
		t.Errorf("third channel id = %q, want generated ch_3", c.ID)
	}
}

func TestParse_nameAfterQuotedComma(t *testing.T) {
	m3u := `#EXTM3U
#EXTINF:-1 tvg-id="X.in" group-title="News, Tamil",Puthiya Thalaimurai
https://cdn.example.com/pt/index.m3u8
`
	channels, err := ParseBytes([]byte(m3u))
	if err != nil {
		t.Fatal(err)
	}
	if len(channels) != 1 || channels[0].Name != "Puthiya Thalaimurai" {
		t.Errorf("channels = %+v", channels)
	}
}

func TestParse_urlWithoutExtinfIgnored(t *testing.T) {
	channels, err := ParseBytes([]byte("#EXTM3U\nhttps://cdn.example.com/orphan.m3u8\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(channels) != 0 {
		t.Errorf("channels = %+v, want none", channels)
	}
}

func TestNormalizeAttrLanguage(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"Tamil", "ta"},
		{"Telugu;Hindi", "te"},
		{"ta", "ta"},
		{"Klingon", ""},
	}
	for _, tc := range cases {
		if got := normalizeAttrLanguage(tc.in); got != tc.want {
			t.Errorf("normalizeAttrLanguage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
