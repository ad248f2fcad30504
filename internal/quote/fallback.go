package quote

// Curated fallback lines used when generation returns nothing. The first
// entry of each list is the one delivered; the rest are kept as editorial
// alternates.
var (
	englishFallbacks = []string{
		"Small commits today build the software you will be proud of tomorrow.",
		"Every bug you fix is a lesson the next release gets for free.",
	}
	burmeseFallbacks = []string{
		"ယနေ့ရေးသော ကုဒ်တစ်ကြောင်းသည် မနက်ဖြန်၏ အောင်မြင်မှုအစ ဖြစ်သည်။",
		"အမှားတစ်ခုပြင်တိုင်း တိုးတက်မှုတစ်ဆင့် တက်နေသည်။",
	}
)

// Fallback returns the deterministic quote text for a language code.
// MM yields the Burmese line, EN_MM yields the English line followed by the
// Burmese line, and any other value yields the English line.
func Fallback(lang string) string {
	switch lang {
	case "MM":
		return burmeseFallbacks[0]
	case "EN_MM":
		return englishFallbacks[0] + "\n" + burmeseFallbacks[0]
	default:
		return englishFallbacks[0]
	}
}
