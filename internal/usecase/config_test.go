package usecase

import (
	"context"
	"testing"

	"github.com/runoshun/secbot/internal/domain"
	"github.com/runoshun/secbot/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowConfig_Execute(t *testing.T) {
	mgr := &testutil.MockConfigManager{
		GlobalInfo:  domain.ConfigInfo{Path: "/home/u/.config/secbot/config.toml", Content: "[log]\n", Exists: true},
		ProjectInfo: domain.ConfigInfo{Path: "/work/.secbot.toml"},
	}
	uc := NewShowConfig(mgr)

	out, err := uc.Execute(context.Background(), ShowConfigInput{})

	require.NoError(t, err)
	assert.Equal(t, mgr.GlobalInfo, out.GlobalConfig)
	assert.Equal(t, mgr.ProjectInfo, out.ProjectConfig)
}

func TestShowConfigTemplate_Execute(t *testing.T) {
	uc := NewShowConfigTemplate()

	out, err := uc.Execute(context.Background(), ShowConfigTemplateInput{})

	require.NoError(t, err)
	assert.Contains(t, out.Template, "[chat]")
	assert.Contains(t, out.Template, "[redis]")
}

func TestInitConfig_Execute(t *testing.T) {
	tests := []struct {
		name        string
		global      bool
		wantPath    string
		wantProject int
		wantGlobal  int
	}{
		{name: "project", wantPath: "/work/.secbot.toml", wantProject: 1},
		{name: "global", global: true, wantPath: "/cfg/secbot/config.toml", wantGlobal: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := &testutil.MockConfigManager{
				GlobalInfo:  domain.ConfigInfo{Path: "/cfg/secbot/config.toml"},
				ProjectInfo: domain.ConfigInfo{Path: "/work/.secbot.toml"},
			}
			uc := NewInitConfig(mgr)

			out, err := uc.Execute(context.Background(), InitConfigInput{Global: tt.global})

			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, out.Path)
			assert.Equal(t, tt.wantProject, mgr.InitProjectN)
			assert.Equal(t, tt.wantGlobal, mgr.InitGlobalN)
		})
	}
}

func TestInitConfig_Execute_Exists(t *testing.T) {
	mgr := &testutil.MockConfigManager{InitProjectErr: domain.ErrConfigExists}
	uc := NewInitConfig(mgr)

	_, err := uc.Execute(context.Background(), InitConfigInput{})

	assert.ErrorIs(t, err, domain.ErrConfigExists)
}
