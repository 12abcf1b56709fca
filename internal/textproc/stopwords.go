package textproc

// baseStopwords is the standard English stopword list. Contractions appear in
// their apostrophe-stripped form ("dont", "isnt") because normalization
// removes punctuation before the stopword check runs.
var baseStopwords = []string{
	"about", "above", "after", "again", "against", "all", "and", "any",
	"are", "arent", "because", "been", "before", "being", "below",
	"between", "both", "but", "cant", "cannot", "could", "couldnt",
	"did", "didnt", "does", "doesnt", "doing", "dont", "down", "during",
	"each", "few", "for", "from", "further", "had", "hadnt", "has",
	"hasnt", "have", "havent", "having", "her", "here", "heres", "hers",
	"herself", "hes", "him", "himself", "his", "how", "hows", "into",
	"isnt", "its", "itself", "lets", "more", "most", "mustnt", "myself",
	"nor", "not", "off", "once", "only", "other", "ought", "our", "ours",
	"ourselves", "out", "over", "own", "same", "shant", "she", "shed",
	"shell", "shes", "should", "shouldnt", "some", "such", "than", "that",
	"thats", "the", "their", "theirs", "them", "themselves", "then",
	"there", "theres", "these", "they", "theyd", "theyll", "theyre",
	"theyve", "this", "those", "through", "too", "under", "until", "very",
	"was", "wasnt", "were", "werent", "weve", "what", "whats", "when",
	"whens", "where", "wheres", "which", "while", "who", "whos", "whom",
	"why", "whys", "with", "wont", "would", "wouldnt", "you", "youd",
	"youll", "youre", "youve", "your", "yours", "yourself", "yourselves",
}
