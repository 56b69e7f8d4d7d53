package dictionary

// spanishSyllables are the prompt fragments handed to the active player.
// Weighted toward common syllables so most prompts have many answers.
var spanishSyllables = []string{
	// two letters
	"ma", "re", "to", "la", "co", "na", "do", "es", "te", "de",
	"se", "le", "da", "ra", "ta", "ca", "pa", "sa", "ba", "fa",
	"ga", "ha", "ja", "va", "ya", "za", "mi", "mo", "mu", "ne",
	"ni", "no", "nu", "pe", "pi", "po", "pu", "ro", "ru", "si",
	"so", "su", "ti", "tu", "vi", "vo", "be", "bi", "bo", "bu",
	"ce", "ci", "cu", "di", "du", "fe", "fi", "fo", "fu", "ge",
	"gi", "go", "gu", "li", "lo", "lu", "me", "er", "ar", "or",
	"ir", "ur", "al", "el", "il", "ol", "ul", "an", "en", "in",
	"on", "un", "as", "os", "us",

	// consonant clusters
	"tra", "tre", "tri", "tro", "pre", "pri", "pro", "pru",
	"bra", "bre", "bri", "bro", "cra", "cre", "cri", "cro",
	"dra", "dre", "dri", "dro", "fra", "fre", "fri", "fro",
	"gra", "gre", "gri", "gro", "pla", "ple", "pli", "plo", "plu",
	"bla", "ble", "bli", "blo", "blu", "cla", "cle", "cli", "clo", "clu",
	"fla", "fle", "fli", "flo", "flu", "gla", "gle", "gli", "glo", "glu",

	// digraphs (normalized: ll kept, ñ becomes n, rr kept)
	"cha", "che", "chi", "cho", "chu",
	"lla", "lle", "lli", "llo", "llu",
	"rra", "rre", "rri", "rro", "rru",

	// common endings
	"cion", "sion", "mente", "ante", "ente", "idad", "ador", "edor",
	"ismo", "ista", "anza", "encia", "ancia", "illo", "allo", "ello",
	"oso", "osa", "ivo", "iva", "able", "ible",

	// vowel pairs
	"ai", "au", "ei", "eu", "oi", "ia", "ie", "io",
	"ua", "ue", "ui", "uo", "ay", "ey", "oy", "uy",
}
