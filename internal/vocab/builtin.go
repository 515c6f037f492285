package vocab

// DefaultDeckName is the name of the compiled-in deck
const DefaultDeckName = "Class Review"

var builtinCards = []Card{
	{
		ID:         1,
		Word:       "Comparison culture",
		Phonetics:  "/kəmˈpær.ɪ.sən ˈkʌl.tʃər/",
		Type:       "n",
		Definition: "The habit of constantly comparing yourself to others, especially online.",
		Example:    "Comparison culture on social media can damage self-esteem.",
	},
	{
		ID:         2,
		Word:       "Validation",
		Phonetics:  "/ˌvæl.ɪˈdeɪ.ʃən/",
		Type:       "n",
		Definition: "Approval or recognition from others.",
		Example:    "Many users seek validation through likes and comments.",
	},
	{
		ID:         3,
		Word:       "Misinformation",
		Phonetics:  "/ˌmɪs.ɪn.fəˈmeɪ.ʃən/",
		Type:       "n",
		Definition: "False or inaccurate information spread unintentionally.",
		Example:    "Misinformation spreads quickly on social media.",
	},
	{
		ID:         4,
		Word:       "Mental well-being",
		Phonetics:  "/ˌmen.təl ˌwelˈbiː.ɪŋ/",
		Type:       "n",
		Definition: "A person's emotional and psychological health.",
		Example:    "Excessive screen time can affect mental well-being.",
	},
	{
		ID:         5,
		Word:       "Information overload",
		Phonetics:  "/ˌɪn.fəˈmeɪ.ʃən ˈəʊ.və.ləʊd/",
		Type:       "n",
		Definition: "Having too much information to process effectively.",
		Example:    "Social media often causes information overload.",
	},
	{
		ID:         6,
		Word:       "Digital boundaries",
		Phonetics:  "/ˌdɪdʒ.ɪ.təl ˈbaʊn.dər.iz/",
		Type:       "n",
		Definition: "Limits set to control online behavior and screen time.",
		Example:    "Setting digital boundaries helps reduce stress.",
	},
	{
		ID:         7,
		Word:       "Dopamine-driven",
		Phonetics:  "/ˈdəʊ.pə.miːn ˌdrɪv.ən/",
		Type:       "adj",
		Definition: "Designed to trigger pleasure and reward in the brain.",
		Example:    "Social media platforms are highly dopamine-driven.",
	},
	{
		ID:         8,
		Word:       "Addictive",
		Phonetics:  "/əˈdɪk.tɪv/",
		Type:       "adj",
		Definition: "Hard to stop doing or using.",
		Example:    "Many people find social media addictive.",
	},
	{
		ID:         9,
		Word:       "Superficial",
		Phonetics:  "/ˌsuː.pəˈfɪʃ.əl/",
		Type:       "adj",
		Definition: "Focused only on the surface, not deep or meaningful.",
		Example:    "Online connections can sometimes feel superficial.",
	},
	{
		ID:         10,
		Word:       "Distraction",
		Phonetics:  "/dɪˈstræk.ʃən/",
		Type:       "n",
		Definition: "Something that takes attention away from what matters.",
		Example:    "Social media is a major distraction during work or study.",
	},
	{
		ID:         11,
		Word:       "Down the rabbit hole",
		Phonetics:  "/daʊn ðə ˈræb.ɪt həʊl/",
		Type:       "idiom",
		Definition: "Spending way more time than planned on something engrossing.",
		Example:    "I went down the rabbit hole on Instagram and lost two hours.",
	},
	{
		ID:         12,
		Word:       "It’s a double-edged sword",
		Phonetics:  "/ˌdʌb.əlˌedʒd ˈsɔːrd/",
		Type:       "idiom",
		Definition: "Has both positive and negative effects.",
		Example:    "Social media is a double-edged sword: it connects people but also creates pressure.",
	},
	{
		ID:         13,
		Word:       "It messes with s.o head",
		Phonetics:  "/mes wɪð ... hed/",
		Type:       "idiom",
		Definition: "Affects someone's mental or emotional state negatively.",
		Example:    "Comparing yourself to influencers can really mess with your head.",
	},
	{
		ID:         14,
		Word:       "Addicted to the feed",
		Phonetics:  "/əˈdɪk.tɪd tu ðə fiːd/",
		Type:       "idiom",
		Definition: "Unable to stop checking social media updates.",
		Example:    "I realized I was addicted to the feed, so I deleted the app for a while.",
	},
}

// Default returns the compiled-in deck
func Default() *Deck {
	deck, err := New(DefaultDeckName, builtinCards)
	if err != nil {
		// The literal list above is fixed; a failure here is a programming error.
		panic(err)
	}
	return deck
}
