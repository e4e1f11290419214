package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sherine-k/infection/pkg/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []agent.Memento {
	symptomatic := agent.SymptomSymptomatic
	return []agent.Memento{
		{
			ID: 1, PosX: 1.5, PosY: 2.5, VelX: -0.5, VelY: 1,
			Immunity: agent.ImmunitySusceptible, Health: agent.HealthInfected,
			Symptom: &symptomatic, State: agent.StateMoving, InfectionRemainingSteps: 42,
		},
		{
			ID: 2, PosX: 30, PosY: 12,
			Immunity: agent.ImmunityImmune, Health: agent.HealthHealthy,
			State: agent.StateExited,
		},
	}
}

func TestSaveLoad(t *testing.T) {
	for _, name := range []string{"snapshot.json", "snapshot.yaml", "snapshot.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			require.NoError(t, Save(path, sampleRecords()))
			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, sampleRecords(), loaded)
		})
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")

	require.NoError(t, Save(path, sampleRecords()))
	require.NoError(t, Save(path, sampleRecords()[:1]))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestJSONFieldNames(t *testing.T) {
	data, err := Encode(sampleRecords(), FormatJSON)
	require.NoError(t, err)

	for _, field := range []string{`"id"`, `"posX"`, `"posY"`, `"velX"`, `"velY"`, `"immunity"`, `"health"`, `"symptom"`, `"state"`, `"infectionRemainingSteps"`} {
		assert.Contains(t, string(data), field)
	}
	assert.Contains(t, string(data), `"Symptomatic"`)
}

func TestEmptySnapshot(t *testing.T) {
	data, err := Encode(nil, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	records, err := Decode(data, FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{not json"), 0o644))
	_, err = Load(broken)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`[{"id":1,"immunity":"Immune","health":"Infected","state":"Moving"}]`), 0o644))
	_, err = Load(invalid)
	assert.Error(t, err)
}

func TestSaveToMissingDirectory(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "nope", "snapshot.json"), sampleRecords())
	assert.Error(t, err)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFor("a/b.YAML"))
	assert.Equal(t, FormatYAML, FormatFor("b.yml"))
	assert.Equal(t, FormatJSON, FormatFor("b.json"))
	assert.Equal(t, FormatJSON, FormatFor("b"))
}
