package models

// Rating is a three-level categorical score.
type Rating string

const (
	RatingLow    Rating = "Low"
	RatingMedium Rating = "Medium"
	RatingHigh   Rating = "High"
)

// Engagement is the predicted-engagement scale.
type Engagement string

const (
	EngagementBelowAverage Engagement = "Below Average"
	EngagementAverage      Engagement = "Average"
	EngagementAboveAverage Engagement = "Above Average"
)

// Scorecard holds the analysis result attached to a content item. Field
// names follow the submission client wire contract. Immutable once computed;
// a resubmission recomputes the whole card.
type Scorecard struct {
	Grammar                float64    `json:"grammar" example:"88.5"`
	Originality            float64    `json:"originality" example:"82.1"`
	Readability            float64    `json:"readability" example:"91.0"`
	AIGeneratedProbability float64    `json:"aiGeneratedProbability" example:"12.4"` // percent, [0,30)
	KeywordStrength        Rating     `json:"keywordStrength" enums:"Low,Medium,High"`
	TopicRelevance         Rating     `json:"topicRelevance" enums:"Low,Medium,High"`
	PredictedEngagement    Engagement `json:"predictedEngagement" enums:"Below Average,Average,Above Average"`
	SentimentScore         float64    `json:"sentimentScore" example:"0.42"` // VADER compound, [-1,1]
	SentimentLabel         string     `json:"sentimentLabel" enums:"negative,neutral,positive"`
	Approved               bool       `json:"approved"` // threshold verdict, advisory unless auto-approve is on
}
