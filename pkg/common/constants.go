package common

const (
	RedisStreamArticleAnalyze = "news.article.analyze"

	RedisStreamGroup    = "analyzer-group"
	RedisStreamConsumer = "analyzer-consumer"

	RedisKeyDictionarySnapshot = "dictionary:entries"

	TickerSourceExactMatch   = "exact_match"
	TickerSourcePartialMatch = "partial_match"
)
