package i18n

import (
	"encoding/json"
	"sort"
	"strings"
	"testing"
)

func TestLocaleKeysParity(t *testing.T) {
	en := mustLoadLocaleMessages(t, LangEN)
	ru := mustLoadLocaleMessages(t, LangRU)

	if missing := missingKeys(en, ru); len(missing) > 0 {
		t.Errorf("keys missing in ru locale: %s", strings.Join(missing, ", "))
	}
	if missing := missingKeys(ru, en); len(missing) > 0 {
		t.Errorf("keys missing in en locale: %s", strings.Join(missing, ", "))
	}
}

func TestLocaleFormatVerbsParity(t *testing.T) {
	en := mustLoadLocaleMessages(t, LangEN)
	ru := mustLoadLocaleMessages(t, LangRU)

	for key, value := range en {
		translated, ok := ru[key]
		if !ok {
			continue
		}
		if got, want := formatVerbs(translated), formatVerbs(value); got != want {
			t.Errorf("locale key %q: ru verbs %q, en verbs %q", key, got, want)
		}
	}
}

func mustLoadLocaleMessages(t *testing.T, language string) map[string]string {
	t.Helper()

	content, err := embeddedLocales.ReadFile("locales/" + language + ".json")
	if err != nil {
		t.Fatalf("read locale %q: %v", language, err)
	}

	messages := map[string]string{}
	if err := json.Unmarshal(content, &messages); err != nil {
		t.Fatalf("parse locale %q: %v", language, err)
	}
	if len(messages) == 0 {
		t.Fatalf("locale %q is empty", language)
	}
	return messages
}

func missingKeys(source map[string]string, target map[string]string) []string {
	missing := make([]string, 0)
	for key := range source {
		if _, ok := target[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

func formatVerbs(message string) string {
	var verbs strings.Builder
	for index := 0; index < len(message)-1; index++ {
		if message[index] == '%' {
			verbs.WriteByte(message[index+1])
			index++
		}
	}
	return verbs.String()
}
