package whoscored

import (
	"errors"
	"testing"

	"github.com/1brianleon/matchcentre/internal/usecase"
)

func pageWithPayload(payload string) string {
	return `<html><body>
<script>var config = {};</script>
<script>
require.config.params["args"] = { matchId: 1729096, matchCentreData: ` + payload + ",\n" + `matchCentreEventTypeJson: {"shot": 1} };
</script>
</body></html>`
}

func TestParseMatchCentre(t *testing.T) {
	t.Parallel()

	payload := `{"home":{"teamId":13,"name":"Arsenal","countryName":"England","managerName":"Mikel Arteta","players":[]},"away":{"teamId":15,"name":"Chelsea","countryName":"England","managerName":"Mauricio Pochettino","players":[]},"events":[{"id":1,"minute":3,"teamId":13,"playerId":99,"type":{"value":1,"displayName":"Pass"},"outcomeType":{"displayName":"Successful"},"period":{"displayName":"FirstHalf"}}],"score":"2 : 1","startDate":"2024-04-23T20:00:00","maxMinute":90,"expandedMaxMinute":98}`

	mc, err := ParseMatchCentre("u", pageWithPayload(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mc.Home.TeamID != 13 || mc.Away.TeamID != 15 {
		t.Fatalf("unexpected team ids: %d, %d", mc.Home.TeamID, mc.Away.TeamID)
	}
	if mc.Home.CountryName != "England" || mc.Home.ManagerName != "Mikel Arteta" {
		t.Fatalf("unexpected home team info: %q, %q", mc.Home.CountryName, mc.Home.ManagerName)
	}
	if mc.Away.ManagerName != "Mauricio Pochettino" {
		t.Fatalf("unexpected away manager %q", mc.Away.ManagerName)
	}
	if mc.Score != "2 : 1" {
		t.Fatalf("unexpected score %q", mc.Score)
	}
	if len(mc.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(mc.Events))
	}
	if mc.Events[0].Type.Name != "Pass" {
		t.Fatalf("expected type Pass, got %q", mc.Events[0].Type.Name)
	}
}

func TestParseMatchCentreNoPayload(t *testing.T) {
	t.Parallel()

	html := `<html><body><script>var config = {};</script><p>fixture list</p></body></html>`
	_, err := ParseMatchCentre("u", html)
	if !errors.Is(err, usecase.ErrNoPayload) {
		t.Fatalf("expected ErrNoPayload, got %v", err)
	}
}

func TestParseMatchCentreNullPayload(t *testing.T) {
	t.Parallel()

	_, err := ParseMatchCentre("u", pageWithPayload("null"))
	if !errors.Is(err, usecase.ErrNoPayload) {
		t.Fatalf("expected ErrNoPayload, got %v", err)
	}
}

func TestParseMatchCentreMalformedPayload(t *testing.T) {
	t.Parallel()

	_, err := ParseMatchCentre("u", pageWithPayload(`{"home": [unclosed`))
	var parseErr *usecase.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.URL != "u" {
		t.Fatalf("expected url in error, got %q", parseErr.URL)
	}
}

func TestParseMatchCentreUnterminatedPayload(t *testing.T) {
	t.Parallel()

	html := `<html><body><script>matchCentreData: {"score": "1 : 0"}</script></body></html>`
	_, err := ParseMatchCentre("u", html)
	var parseErr *usecase.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}
