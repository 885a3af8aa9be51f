package artifact

import (
	"flag"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "rewrite golden files in testdata/")

func TestSetupScriptGolden(t *testing.T) {
	tests := []struct {
		golden string
		urls   []string
	}{
		{"setup-empty.sh.golden", nil},
		{"setup-single.sh.golden", []string{"git@host:org/repo.git"}},
		{"setup-collision.sh.golden", []string{
			"git@host:org/repo.git",
			"https://example.com/team/Repo.git",
			"https://example.com/team/my-repo",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			b, err := Generate("demo", entries(t, tt.urls...), Options{})
			require.NoError(t, err)

			path := filepath.Join("testdata", tt.golden)
			if *update {
				require.NoError(t, os.WriteFile(path, b.SetupScript, 0644))
			}
			want, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, string(want), string(b.SetupScript))
		})
	}
}

func TestPlanVerifiesBeforeAdding(t *testing.T) {
	plan := Plan(3)
	verify := slices.Index(plan, StepVerifyKeys)
	add := slices.Index(plan, StepAddSubmodules)
	require.NotEqual(t, -1, verify)
	assert.Less(t, verify, add)
	assert.Less(t, slices.Index(plan, StepExportEnv), verify)
	assert.Equal(t, StepGuardEnvFile, plan[1])
	assert.NotContains(t, plan, StepGuidance)
}

func TestPlanWithoutEntries(t *testing.T) {
	assert.Equal(t, []Step{StepPrelude, StepGuardEnvFile, StepExportEnv, StepGuidance}, Plan(0))
}

func TestScriptNeverEmbedsURLs(t *testing.T) {
	b, err := Generate("demo", entries(t, "https://token@github.com/org/secret.git"), Options{})
	require.NoError(t, err)

	assert.NotContains(t, string(b.SetupScript), "github.com/org/secret")
	assert.Contains(t, string(b.SetupScript), `add_submodule "${SGM_SECRET_URL}" secret SGM_SECRET_URL`)
}

func TestScriptQuotesPaths(t *testing.T) {
	b, err := Generate("demo", entries(t, "https://host/org/my repo.git"), Options{})
	require.NoError(t, err)

	assert.Contains(t, string(b.SetupScript), `add_submodule "${SGM_MY_REPO_URL}" 'my repo' SGM_MY_REPO_URL`)
}
