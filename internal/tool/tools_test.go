package tool_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/draftdesk/draftdesk/internal/draft"
	"github.com/draftdesk/draftdesk/internal/tool"
	"github.com/draftdesk/draftdesk/internal/workflow"
)

type workflowSvcMock struct {
	ListUnreadWithDraftsFunc func(ctx context.Context) ([]workflow.Email, error)
	ListDraftsFunc           func() []draft.Draft
	EditDraftFunc            func(emailID, text string) string
	ApproveAndSendFunc       func(ctx context.Context, emailID, text string) (workflow.SendResult, error)
}

func (m *workflowSvcMock) ListUnreadWithDrafts(ctx context.Context) ([]workflow.Email, error) {
	return m.ListUnreadWithDraftsFunc(ctx)
}

func (m *workflowSvcMock) ListDrafts() []draft.Draft {
	return m.ListDraftsFunc()
}

func (m *workflowSvcMock) EditDraft(emailID, text string) string {
	return m.EditDraftFunc(emailID, text)
}

func (m *workflowSvcMock) ApproveAndSend(ctx context.Context, emailID, text string) (workflow.SendResult, error) {
	return m.ApproveAndSendFunc(ctx, emailID, text)
}

type workflowService interface {
	ListUnreadWithDrafts(ctx context.Context) ([]workflow.Email, error)
	ListDrafts() []draft.Draft
	EditDraft(emailID, text string) string
	ApproveAndSend(ctx context.Context, emailID, text string) (workflow.SendResult, error)
}

func newClientSession(t *testing.T, svc workflowService) *mcp.ClientSession {
	t.Helper()

	server := tool.NewServer(svc)
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil)
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	ctx := context.Background()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = clientSession.Close() })

	return clientSession
}

func callTool[T any](t *testing.T, session *mcp.ClientSession, name string, args any) (T, *mcp.CallToolResult) {
	t.Helper()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)

	var out T
	if !result.IsError {
		require.NoError(t, json.Unmarshal(
			[]byte(result.Content[0].(*mcp.TextContent).Text),
			&out,
		))
	}

	return out, result
}
