package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-stats-service/internal/domain/entities"
	"social-stats-service/internal/services"
)

type stubResolver struct {
	calls []string
}

func (s *stubResolver) ResolveStats(ctx context.Context, platform, username string) *entities.ProfileStats {
	s.calls = append(s.calls, platform+"/"+username)
	if platform != "YouTube" {
		return entities.EmptyProfileStats()
	}
	count := int64(1050000)
	name := "Example Channel"
	return &entities.ProfileStats{FollowerCount: &count, DisplayName: &name}
}

func (s *stubResolver) SupportedPlatforms() services.PlatformList {
	return services.PlatformList{Dedicated: []string{"YouTube"}, Fallback: []string{"Twitch"}}
}

func execute(t *testing.T, stub *stubResolver, stdin string, args ...string) string {
	t.Helper()
	resolver = stub
	pretty = false
	t.Cleanup(func() { resolver = nil })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestResolveCommand(t *testing.T) {
	stub := &stubResolver{}
	out := execute(t, stub, "", "resolve", "YouTube", "example")
	assert.JSONEq(t, `{"follower_count":1050000,"display_name":"Example Channel"}`, out)
	assert.Equal(t, []string{"YouTube/example"}, stub.calls)
}

func TestResolveCommandUnknownPlatform(t *testing.T) {
	out := execute(t, &stubResolver{}, "", "resolve", "MySpace", "tom")
	assert.JSONEq(t, `{"follower_count":null,"display_name":null}`, out)
}

func TestBatchCommandFromStdin(t *testing.T) {
	stub := &stubResolver{}
	input := "# platform,username\nYouTube,example\n\nX (Twitter), jack\nbroken line\n"
	out := execute(t, stub, input, "batch", "-")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.JSONEq(t, `{"platform":"YouTube","username":"example","follower_count":1050000,"display_name":"Example Channel"}`, lines[0])
	assert.JSONEq(t, `{"platform":"X (Twitter)","username":"jack","follower_count":null,"display_name":null}`, lines[1])
	assert.JSONEq(t, `{"platform":"","username":"","follower_count":null,"display_name":null,"error":"Missing required fields: platform, username"}`, lines[2])
	assert.Equal(t, []string{"YouTube/example", "X (Twitter)/jack"}, stub.calls)
}

func TestPlatformsCommand(t *testing.T) {
	out := execute(t, &stubResolver{}, "", "platforms")
	assert.Contains(t, out, "  YouTube\n")
	assert.Contains(t, out, "  Twitch\n")
}

func TestParseBatchLine(t *testing.T) {
	tests := []struct {
		line     string
		platform string
		username string
		ok       bool
	}{
		{"YouTube,example", "YouTube", "example", true},
		{" Instagram , jane ", "Instagram", "jane", true},
		{"YouTube,", "YouTube", "", false},
		{",example", "", "example", false},
		{"no comma", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			platform, username, ok := parseBatchLine(tt.line)
			assert.Equal(t, tt.platform, platform)
			assert.Equal(t, tt.username, username)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
