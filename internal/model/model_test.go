package model

import (
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type ModelUnitSuite struct {
	suite.Suite
}

func strPtr(s string) *string {
	return &s
}

func (s *ModelUnitSuite) TestTimeframeYearRange(t provider.T) {
	t.Parallel()
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		timeframe Timeframe
		expected  YearRange
		expectErr bool
	}{
		{name: "Last five years", timeframe: TimeframeFiveYears, expected: YearRange{From: 2020, To: 2025}},
		{name: "Last ten years", timeframe: TimeframeTenYears, expected: YearRange{From: 2015, To: 2025}},
		{name: "All time", timeframe: TimeframeAll, expected: YearRange{From: 1900, To: 2025}},
		{name: "Unknown timeframe", timeframe: Timeframe("15"), expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			yr, err := tc.timeframe.YearRange(now)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, yr)
			assert.LessOrEqual(t, yr.From, yr.To)
		})
	}
}

func (s *ModelUnitSuite) TestRegionLanguageCode(t provider.T) {
	t.Parallel()

	testCases := []struct {
		region    Region
		expected  string
		expectErr bool
	}{
		{region: RegionHollywood, expected: "en"},
		{region: RegionBollywood, expected: "hi"},
		{region: RegionAll, expected: ""},
		{region: Region("nollywood"), expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(string(tc.region), func(t provider.T) {
			code, err := tc.region.LanguageCode()
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, code)
		})
	}
}

func (s *ModelUnitSuite) TestCursor(t provider.T) {
	t.Parallel()
	deck := []Movie{{ID: 1}, {ID: 2}, {ID: 3}}

	assert.Equal(t, 0, Cursor(deck, nil))
	assert.Equal(t, 2, Cursor(deck, Swipes{1: ActionLike, 2: ActionPass}))
	assert.Equal(t, 3, Cursor(deck, Swipes{1: ActionLike, 2: ActionPass, 3: ActionSuperlike}))
}

func (s *ModelUnitSuite) TestSessionHelpers(t provider.T) {
	t.Parallel()
	session := MatchSession{
		Movies:       []Movie{{ID: 10}, {ID: 20}},
		Participants: []ParticipantID{"alice", "bob"},
	}

	assert.True(t, session.HasParticipant("alice"))
	assert.False(t, session.HasParticipant("carol"))
	assert.Equal(t, 1, session.DeckIndex(20))
	assert.Equal(t, -1, session.DeckIndex(30))

	partner, ok := session.Partner("alice")
	assert.True(t, ok)
	assert.Equal(t, ParticipantID("bob"), partner)
}

func (s *ModelUnitSuite) TestImageURLs(t provider.T) {
	t.Parallel()

	assert.Equal(t, PosterPlaceholder, PosterURL(DefaultImageBaseURL, nil, PosterW500))
	assert.Equal(t, PosterPlaceholder, PosterURL(DefaultImageBaseURL, strPtr(""), PosterW500))
	assert.Equal(t,
		"https://image.tmdb.org/t/p/w780/abc.jpg",
		PosterURL(DefaultImageBaseURL, strPtr("/abc.jpg"), PosterW780),
	)
	assert.Equal(t,
		"https://image.tmdb.org/t/p/w500/abc.jpg",
		PosterURL("", strPtr("/abc.jpg"), ""),
	)
	assert.Equal(t, BackdropPlaceholder, BackdropURL(DefaultImageBaseURL, nil, BackdropW1280))
	assert.Equal(t,
		"https://image.tmdb.org/t/p/w1280/b.jpg",
		BackdropURL(DefaultImageBaseURL, strPtr("/b.jpg"), ""),
	)

	_, err := ParsePosterSize("w9000")
	assert.Error(t, err)
}

func (s *ModelUnitSuite) TestSwipeAction(t provider.T) {
	t.Parallel()

	a, err := ParseSwipeAction("superlike")
	assert.NoError(t, err)
	assert.True(t, a.IsPositive())
	assert.False(t, ActionPass.IsPositive())

	_, err = ParseSwipeAction("maybe")
	assert.Error(t, err)

	assert.Equal(t, "abc_u1", SwipesKey("abc", "u1"))
}

func (s *ModelUnitSuite) TestRating(t provider.T) {
	t.Parallel()

	assert.Equal(t, RatingGreen, RatingColorOf(8.0))
	assert.Equal(t, RatingOrange, RatingColorOf(5.0))
	assert.Equal(t, RatingRed, RatingColorOf(4.9))
	assert.Equal(t, "7.3", FormatRating(7.25001))
}

func TestModelUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(ModelUnitSuite))
}
