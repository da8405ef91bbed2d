package callflow

import (
	"testing"

	"github.com/demandify-media/caller-voice-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplatesValidate(t *testing.T) {
	assert.NoError(t, DefaultTemplates().Validate())
}

func TestValidateRejectsEmptyBucket(t *testing.T) {
	templates := DefaultTemplates()
	templates.RapportBuilders = nil
	err := templates.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rapport_builders")
}

func TestValidateRejectsMissingGreetingBucket(t *testing.T) {
	templates := DefaultTemplates()
	delete(templates.GreetingAcks, domain.SentimentNegative)
	assert.Error(t, templates.Validate())
}

func TestGreetingBucketFallsBackToNeutral(t *testing.T) {
	templates := DefaultTemplates()
	bucket := templates.greetingBucket(domain.SentimentQuestion)
	assert.Equal(t, templates.GreetingAcks[domain.SentimentNeutral], bucket)
}

func TestDefaultScriptValidate(t *testing.T) {
	assert.NoError(t, DefaultScript().Validate())

	script := DefaultScript()
	script.ValuePitch = ""
	err := script.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value_pitch")
}

func TestSelectorChooseEmptyBucket(t *testing.T) {
	assert.Equal(t, "", NewSeededSelector(1).Choose(nil))
	assert.Equal(t, "", FirstSelector{}.Choose(nil))
}

func TestSeededSelectorIsReproducible(t *testing.T) {
	candidates := []string{"a", "b", "c", "d", "e"}

	pick := func(seed int64) []string {
		s := NewSeededSelector(seed)
		out := make([]string, 10)
		for i := range out {
			out[i] = s.Choose(candidates)
		}
		return out
	}

	assert.Equal(t, pick(7), pick(7))
}
