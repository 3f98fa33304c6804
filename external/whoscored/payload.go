package whoscored

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bytedance/sonic"

	"github.com/1brianleon/matchcentre/internal/usecase"
)

// payloadMarker precedes the embedded JSON object inside one of the page's
// script tags. The object runs until the first ",\n" after the marker.
const payloadMarker = "matchCentreData:"

// ParseMatchCentre locates and decodes the embedded match payload. Pages
// without the marker return usecase.ErrNoPayload; a present but undecodable
// payload returns a *usecase.ParseError.
func ParseMatchCentre(url, html string) (*MatchCentre, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &usecase.ParseError{URL: url, Err: err}
	}

	var raw string
	found := false
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, payloadMarker)
		if idx < 0 {
			return true
		}
		raw = text[idx+len(payloadMarker):]
		found = true
		return false
	})
	if !found {
		return nil, usecase.ErrNoPayload
	}

	end := strings.Index(raw, ",\n")
	if end < 0 {
		return nil, &usecase.ParseError{URL: url, Err: fmt.Errorf("unterminated match centre payload")}
	}
	blob := strings.TrimSpace(raw[:end])
	if blob == "" || blob == "null" {
		return nil, usecase.ErrNoPayload
	}

	var mc MatchCentre
	if err := sonic.Unmarshal([]byte(blob), &mc); err != nil {
		return nil, &usecase.ParseError{URL: url, Err: err}
	}

	return &mc, nil
}
