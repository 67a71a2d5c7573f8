package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankedFixture() []ClassifiedItem {
	return Rank([]ClassifiedItem{
		{RawItem: RawItem{URL: "https://a.de/recall"}, Topic: TopicQualityRecall, Score: 8},
		{RawItem: RawItem{URL: "https://a.de/price"}, Topic: TopicPricingPromo, Score: 6},
		{RawItem: RawItem{URL: "https://a.de/price2"}, Topic: TopicPricingPromo, Score: 2},
		{RawItem: RawItem{URL: "https://a.de/store"}, Topic: TopicExpansion, Score: 4},
		{RawItem: RawItem{URL: "https://hotnews.ro/x"}, Topic: TopicOther, Score: 3, International: true},
		{RawItem: RawItem{URL: "https://a.de/misc"}, Topic: TopicOther, Score: 1},
	})
}

func TestTopicBucketsPartition(t *testing.T) {
	buckets := TopicBuckets(rankedFixture(), OrderFixed)

	total := 0
	seen := map[string]bool{}
	for _, b := range buckets {
		require.NotEmpty(t, b.Items, "empty topics must be omitted")
		for _, it := range b.Items {
			assert.Equal(t, b.Topic, it.Topic)
			assert.False(t, seen[it.URL], "item %s placed twice", it.URL)
			seen[it.URL] = true
			total++
		}
	}
	assert.Equal(t, 6, total, "every item lands in exactly one bucket")
}

func TestTopicBucketsFixedOrder(t *testing.T) {
	buckets := TopicBuckets(rankedFixture(), OrderFixed)

	var topics []Topic
	for _, b := range buckets {
		topics = append(topics, b.Topic)
	}
	assert.Equal(t, []Topic{TopicQualityRecall, TopicPricingPromo, TopicExpansion, TopicOther}, topics)
}

func TestTopicBucketsByMaxScore(t *testing.T) {
	buckets := TopicBuckets(rankedFixture(), OrderByMaxScore)

	require.NotEmpty(t, buckets)
	for i := 1; i < len(buckets); i++ {
		assert.GreaterOrEqual(t, buckets[i-1].MaxScore(), buckets[i].MaxScore())
	}
	assert.Equal(t, TopicQualityRecall, buckets[0].Topic, "strongest story leads")
}

func TestTopicBucketsKeepRankedOrderInside(t *testing.T) {
	buckets := TopicBuckets(rankedFixture(), OrderByMaxScore)

	for _, b := range buckets {
		for i := 1; i < len(b.Items); i++ {
			assert.GreaterOrEqual(t, b.Items[i-1].Score, b.Items[i].Score,
				"bucket %s not in ranked order", b.Topic)
		}
	}
}

func TestSplitTiers(t *testing.T) {
	ranked := rankedFixture()

	tb := SplitTiers(ranked, 2, 1, 5)

	require.Len(t, tb.Headline, 2)
	assert.Equal(t, "https://a.de/recall", tb.Headline[0].URL)
	require.Len(t, tb.FurtherMentions, 1)
	assert.Equal(t, "https://a.de/store", tb.FurtherMentions[0].URL)

	// International section only collects items below the fold.
	require.Len(t, tb.International, 1)
	assert.Equal(t, "https://hotnews.ro/x", tb.International[0].URL)
}

func TestSplitTiersBounds(t *testing.T) {
	ranked := rankedFixture()

	t.Run("headline larger than batch", func(t *testing.T) {
		tb := SplitTiers(ranked, 100, 5, 5)
		assert.Len(t, tb.Headline, len(ranked))
		assert.Empty(t, tb.FurtherMentions)
		assert.Empty(t, tb.International)
	})

	t.Run("international cap", func(t *testing.T) {
		tb := SplitTiers(ranked, 0, 0, 0)
		assert.Empty(t, tb.International)
	})

	t.Run("empty batch", func(t *testing.T) {
		tb := SplitTiers(nil, 3, 3, 3)
		assert.Empty(t, tb.Headline)
		assert.Empty(t, tb.FurtherMentions)
		assert.Empty(t, tb.International)
	})
}
