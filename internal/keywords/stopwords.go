package keywords

var englishStopWords = []string{
	"a", "about", "above", "after", "again", "against", "all", "also", "am", "an", "and", "any",
	"are", "as", "at", "be", "because", "been", "before", "being", "below", "between", "both",
	"but", "by", "can", "could", "did", "do", "does", "doing", "don", "down", "during", "each",
	"few", "for", "from", "further", "get", "got", "had", "has", "have", "having", "he", "her",
	"here", "hers", "herself", "him", "himself", "his", "how", "i", "if", "in", "into", "is", "it",
	"its", "itself", "just", "like", "me", "more", "most", "my", "myself", "no", "nor", "not",
	"now", "of", "off", "on", "once", "only", "or", "other", "our", "ours", "ourselves", "out",
	"over", "own", "really", "same", "she", "should", "so", "some", "such", "than", "that", "the",
	"their", "theirs", "them", "themselves", "then", "there", "these", "they", "this", "those",
	"through", "to", "too", "under", "until", "up", "very", "was", "we", "were", "what", "when",
	"where", "which", "while", "who", "whom", "why", "will", "with", "would", "you", "your",
	"yours", "yourself", "yourselves", "um", "uh", "yeah", "okay", "ok", "gonna", "thing", "things",
}

// Hiragana never reaches the stop list because the tokenizer drops it, so
// only kanji and katakana filler appears here.
var japaneseStopWords = []string{
	"私", "僕", "俺", "自分", "皆", "皆さん", "今", "今日", "本当", "感じ", "場合", "意味", "状態",
	"事", "物", "者", "時", "人", "方", "中", "上", "下", "前", "後", "的", "等", "様", "風",
	"一", "二", "三", "何", "回", "年", "月", "日", "分", "秒", "話", "今回", "以上", "以下",
	"非常", "普通", "多分", "全部", "色々", "一番", "最近", "結構", "大体",
	"ホント", "マジ", "ヤツ",
}

var stopWords = func() map[string]struct{} {
	m := make(map[string]struct{}, len(englishStopWords)+len(japaneseStopWords))
	for _, w := range englishStopWords {
		m[w] = struct{}{}
	}
	for _, w := range japaneseStopWords {
		m[w] = struct{}{}
	}
	return m
}()

// IsStopWord reports whether a normalised token is ignored by Extract.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}
