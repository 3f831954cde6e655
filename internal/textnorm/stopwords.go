package textnorm

import "strings"

// stopwordList is the fixed English stopword set applied when stopword
// removal is requested. It is intentionally small; dictionary-based entity
// extraction runs on the raw text and is unaffected by it.
const stopwordList = "a an and are as at be by for from has have if in into is it its of on or that the to with you your " +
	"about across after against all also among because been before being between both but can did do does doing down during each else few " +
	"further he her here hers herself him himself his how i itself just me more most my myself nor not now off once only other our ours ourselves " +
	"out over own same she should so some such than their theirs them themselves then there these they this those through too under until up very " +
	"was we were what when where which while who whom why will within without would yours yourself yourselves"

var stopwords = buildStopwords()

func buildStopwords() map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(stopwordList) {
		set[word] = true
	}
	return set
}

// IsStopword reports whether a normalized token is in the fixed stopword set.
func IsStopword(token string) bool {
	return stopwords[token]
}
