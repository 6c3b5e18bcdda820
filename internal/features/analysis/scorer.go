package analysis

import (
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"soulscribe-backend/internal/features/analysis/models"
)

// Approval thresholds and score bands. A deployment tunes moderation by
// changing these, not by editing the workflow.
const (
	GrammarBase     = 70.0
	GrammarSpread   = 30.0
	OriginalityBase = 60.0
	OriginalitySpread = 40.0
	ReadabilityBase = 75.0
	ReadabilitySpread = 25.0
	MaxScore        = 100.0

	// AI-generation likelihood is drawn from [0, AIProbabilitySpread) percent.
	AIProbabilitySpread = 30.0

	ApproveGrammarThreshold     = 85.0
	ApproveOriginalityThreshold = 80.0
	ApproveAIProbabilityMax     = 20.0

	KeywordHighWordCount   = 100
	KeywordMediumWordCount = 50
	RelevanceHighLength    = 200
	RelevanceMediumLength  = 100

	// Average-sentence-length bands for predicted engagement. The bands
	// overlap; the Above Average band is checked first and wins.
	EngagementAboveMin = 15.0
	EngagementAboveMax = 25.0
	EngagementAvgMin   = 10.0
	EngagementAvgMax   = 30.0

	SentimentPositiveMin = 0.20
	SentimentNegativeMax = -0.20
)

// Scorer produces a quality scorecard for submitted text. The heuristic
// implementation below is a stand-in for a real quality model; anything
// satisfying this interface can replace it without touching the workflow.
type Scorer interface {
	Score(text string) *models.Scorecard
}

type heuristicScorer struct {
	mu    sync.Mutex
	rand  *rand.Rand
	vader *govader.SentimentIntensityAnalyzer
}

// NewHeuristicScorer returns the default scorer seeded from the clock.
func NewHeuristicScorer() Scorer {
	return NewHeuristicScorerWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewHeuristicScorerWithRand accepts the random source so tests can inject a
// deterministic one.
func NewHeuristicScorerWithRand(r *rand.Rand) Scorer {
	return &heuristicScorer{
		rand:  r,
		vader: govader.NewSentimentIntensityAnalyzer(),
	}
}

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

func (s *heuristicScorer) Score(text string) *models.Scorecard {
	wordCount := len(strings.Fields(text))
	sentenceCount := countSentences(text)

	s.mu.Lock()
	grammar := min(MaxScore, GrammarBase+s.rand.Float64()*GrammarSpread)
	originality := min(MaxScore, OriginalityBase+s.rand.Float64()*OriginalitySpread)
	readability := min(MaxScore, ReadabilityBase+s.rand.Float64()*ReadabilitySpread)
	aiProbability := s.rand.Float64() * AIProbabilitySpread
	s.mu.Unlock()

	sentiment := s.vader.PolarityScores(plainText(text)).Compound

	card := &models.Scorecard{
		Grammar:                grammar,
		Originality:            originality,
		Readability:            readability,
		AIGeneratedProbability: aiProbability,
		KeywordStrength:        keywordStrength(wordCount),
		TopicRelevance:         topicRelevance(len(text)),
		PredictedEngagement:    predictedEngagement(wordCount, sentenceCount),
		SentimentScore:         sentiment,
		SentimentLabel:         sentimentLabel(sentiment),
		Approved: grammar > ApproveGrammarThreshold &&
			originality > ApproveOriginalityThreshold &&
			aiProbability < ApproveAIProbabilityMax,
	}

	return card
}

func countSentences(text string) int {
	count := 0
	for _, segment := range sentenceEnd.Split(text, -1) {
		if strings.TrimSpace(segment) != "" {
			count++
		}
	}
	return count
}

func keywordStrength(wordCount int) models.Rating {
	switch {
	case wordCount > KeywordHighWordCount:
		return models.RatingHigh
	case wordCount > KeywordMediumWordCount:
		return models.RatingMedium
	default:
		return models.RatingLow
	}
}

func topicRelevance(length int) models.Rating {
	switch {
	case length > RelevanceHighLength:
		return models.RatingHigh
	case length > RelevanceMediumLength:
		return models.RatingMedium
	default:
		return models.RatingLow
	}
}

// predictedEngagement bands on average sentence length. Varied, mid-length
// sentences read as more engaging.
func predictedEngagement(wordCount, sentenceCount int) models.Engagement {
	avg := float64(wordCount) / float64(max(1, sentenceCount))
	switch {
	case avg > EngagementAboveMin && avg < EngagementAboveMax:
		return models.EngagementAboveAverage
	case avg > EngagementAvgMin && avg < EngagementAvgMax:
		return models.EngagementAverage
	default:
		return models.EngagementBelowAverage
	}
}

func sentimentLabel(score float64) string {
	switch {
	case score >= SentimentPositiveMin:
		return "positive"
	case score <= SentimentNegativeMax:
		return "negative"
	default:
		return "neutral"
	}
}

var (
	markdownLink = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURL      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTag      = regexp.MustCompile(`<[^>]+>`)
)

// plainText strips markdown and links so the sentiment analyzer only sees
// prose.
func plainText(text string) string {
	stripped := markdownLink.ReplaceAllString(text, "$1")
	out := blackfriday.Run([]byte(stripped), blackfriday.WithNoExtensions())
	cleaned := htmlTag.ReplaceAllString(string(out), " ")
	cleaned = bareURL.ReplaceAllString(cleaned, "")
	return strings.Join(strings.Fields(cleaned), " ")
}
