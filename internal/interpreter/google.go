package interpreter

import (
	"context"
	"fmt"
	"os"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleTranslate is a machine-translation baseline interpreter. It produces
// reference sessions to compare LLM interpreters against, using the Google
// Cloud Translation API instead of a generation backend.
type GoogleTranslate struct {
	credentials string
}

// NewGoogleTranslate creates the baseline interpreter. credentials may name
// a Google Cloud credentials file; when empty, application default
// credentials apply.
func NewGoogleTranslate(credentials string) *GoogleTranslate {
	return &GoogleTranslate{credentials: credentials}
}

func (g *GoogleTranslate) Name() string { return "Google Translate" }

// Brief describes the baseline for export payloads; there is no prompt.
func (g *GoogleTranslate) Brief() string {
	return "Machine-translation baseline (Google Cloud Translation API)"
}

// Facilitate translates one message. The context argument is accepted for
// interface parity but the Translation API has no use for it.
func (g *GoogleTranslate) Facilitate(ctx context.Context, message, senderLang, receiverLang, _ string) (Exchange, error) {
	if g.credentials != "" {
		os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", g.credentials)
	}

	targetTag, err := language.Parse(receiverLang)
	if err != nil {
		return Exchange{}, fmt.Errorf("translation failed: invalid target language %q: %w", receiverLang, err)
	}

	opts := []option.ClientOption{}
	if g.credentials != "" {
		opts = append(opts, option.WithCredentialsFile(g.credentials))
	}

	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return Exchange{}, fmt.Errorf("translation failed: create client: %w", err)
	}
	defer client.Close()

	var translations []translate.Translation
	if sourceTag, parseErr := language.Parse(senderLang); parseErr == nil {
		translations, err = client.Translate(ctx, []string{message}, targetTag, &translate.Options{Source: sourceTag})
	} else {
		translations, err = client.Translate(ctx, []string{message}, targetTag, nil)
	}
	if err != nil {
		return Exchange{}, fmt.Errorf("translation failed: %w", err)
	}
	if len(translations) == 0 {
		return Exchange{}, fmt.Errorf("translation failed: no translation returned")
	}

	return Exchange{
		Original:            message,
		OriginalLanguage:    senderLang,
		Translation:         translations[0].Text,
		TranslationLanguage: receiverLang,
	}, nil
}
