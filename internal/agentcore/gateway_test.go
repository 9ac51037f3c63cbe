package agentcore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.json")

	cfg := &GatewayConfig{
		GatewayID:       "gw-abc123",
		GatewayURL:      "https://gw-abc123.gateway.example.com/mcp",
		TargetID:        "tgt-1",
		Region:          "us-east-1",
		CognitoClientID: "client",
		CognitoDomain:   "my-domain",
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadGatewayConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadGatewayConfigMissingFile(t *testing.T) {
	_, err := LoadGatewayConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadGatewayConfigDefaultsRegion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.json")
	require.NoError(t, (&GatewayConfig{GatewayID: "gw-1"}).Save(path))

	loaded, err := LoadGatewayConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultRegion, loaded.Region)
}

type fakeTargetAPI struct {
	statuses []types.TargetStatus
	reasons  []string
	calls    int
}

func (f *fakeTargetAPI) GetGatewayTarget(ctx context.Context, in *bedrockagentcorecontrol.GetGatewayTargetInput, opts ...func(*bedrockagentcorecontrol.Options)) (*bedrockagentcorecontrol.GetGatewayTargetOutput, error) {
	i := f.calls
	if i >= len(f.statuses) {
		i = len(f.statuses) - 1
	}
	f.calls++
	return &bedrockagentcorecontrol.GetGatewayTargetOutput{
		Status:        f.statuses[i],
		StatusReasons: f.reasons,
	}, nil
}

func TestWaitTargetReady(t *testing.T) {
	api := &fakeTargetAPI{statuses: []types.TargetStatus{
		types.TargetStatus("CREATING"),
		types.TargetStatus("CREATING"),
		types.TargetStatusReady,
	}}

	err := waitTargetReady(context.Background(), api, "gw-1", "tgt-1", time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 3, api.calls)
}

func TestWaitTargetFailed(t *testing.T) {
	api := &fakeTargetAPI{
		statuses: []types.TargetStatus{types.TargetStatusFailed},
		reasons:  []string{"endpoint unreachable"},
	}

	err := waitTargetReady(context.Background(), api, "gw-1", "tgt-1", time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint unreachable")
	assert.Equal(t, 1, api.calls)
}

func TestWaitTargetExhaustsAttempts(t *testing.T) {
	api := &fakeTargetAPI{statuses: []types.TargetStatus{types.TargetStatus("CREATING")}}

	err := waitTargetReady(context.Background(), api, "gw-1", "tgt-1", time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not READY")
	assert.Equal(t, targetPollAttempts, api.calls)
}

func TestWaitTargetCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	api := &fakeTargetAPI{statuses: []types.TargetStatus{types.TargetStatusReady}}
	err := waitTargetReady(ctx, api, "gw-1", "tgt-1", time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}
