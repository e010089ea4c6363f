package ramadan

// Dua is a supplication shown on the home view during Ramadan.
type Dua struct {
	Title           string `json:"title"`
	Arabic          string `json:"arabic"`
	Transliteration string `json:"transliteration"`
	Meaning         string `json:"meaning"`
}

// Duas for the start and the end of the fast.
var Duas = []Dua{
	{
		Title:           "Sehri Dua",
		Arabic:          "وَبِصَوْمِ غَدٍ نَّوَيْتُ مِنْ شَهْرِ رَمَضَانَ",
		Transliteration: "Wa bisawmi ghadin nawaiytu min shahri ramadan",
		Meaning:         "I intend to keep the fast for tomorrow in the month of Ramadan.",
	},
	{
		Title:           "Iftar Dua",
		Arabic:          "اللَّهُمَّ اِنِّى لَكَ صُمْتُ وَبِكَ امنْتُ وَعَلَيْكَ تَوَكَّلْتُ وَعَلَى رِزْقِكَ اَفْطَرْتُ",
		Transliteration: "Allahumma inni laka sumtu wa bika aamantu wa 'alayka tawakkaltu wa 'ala rizq-ika -aftartu",
		Meaning:         "O Allah! I fasted for You and I believe in You and I put my trust in You and I break my fast with Your sustenance.",
	},
}
