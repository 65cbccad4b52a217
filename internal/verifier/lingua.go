package verifier

import (
	"fmt"
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

// Lingua adapts the lingua-go language detector to the Classifier contract.
// The detector is expensive to build; construct once and reuse. Lifecycle is
// caller-owned — there is no package-level instance.
type Lingua struct {
	detector lingua.LanguageDetector
}

// NewLingua builds a classifier covering all languages lingua supports.
func NewLingua() *Lingua {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()
	return &Lingua{detector: detector}
}

// Predict identifies the language of text and reports it as a
// "__label__<iso639-3>_<Script>" label with the detector's confidence.
// An undetectable text yields an empty label, which Verify treats as a
// failed check.
func (l *Lingua) Predict(text string) (string, float64, error) {
	lang, ok := l.detector.DetectLanguageOf(text)
	if !ok {
		return "", 0, nil
	}
	confidence := l.detector.ComputeLanguageConfidence(text, lang)
	iso := strings.ToLower(lang.IsoCode639_3().String())
	return fmt.Sprintf("%s%s_%s", labelPrefix, iso, scriptFor(iso)), confidence, nil
}

// scriptFor maps an ISO 639-3 code to the ISO 15924 script its lingua
// detection model reads. Languages absent from the table use Latin.
func scriptFor(iso string) string {
	if script, ok := languageScripts[iso]; ok {
		return script
	}
	return "Latn"
}

var languageScripts = map[string]string{
	"ara": "Arab",
	"arb": "Arab",
	"bel": "Cyrl",
	"ben": "Beng",
	"bul": "Cyrl",
	"ell": "Grek",
	"fas": "Arab",
	"guj": "Gujr",
	"heb": "Hebr",
	"hin": "Deva",
	"hye": "Armn",
	"jpn": "Jpan",
	"kat": "Geor",
	"kaz": "Cyrl",
	"kor": "Hang",
	"mar": "Deva",
	"mkd": "Cyrl",
	"mon": "Cyrl",
	"pan": "Guru",
	"pes": "Arab",
	"rus": "Cyrl",
	"srp": "Cyrl",
	"tam": "Taml",
	"tel": "Telu",
	"tha": "Thai",
	"ukr": "Cyrl",
	"urd": "Arab",
	"yid": "Hebr",
	"zho": "Hans",
}
