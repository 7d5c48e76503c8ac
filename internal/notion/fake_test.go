package notion

import (
	"context"
)

// fakeClient records calls and serves canned responses for tests that
// exercise the logic above the HTTP layer.
type fakeClient struct {
	createdPages   []*CreatePageRequest
	appendedBlocks map[string][]Block
	listChildren   map[string][]Block
	queryPages     []Page
	database       *Database
	createErr      error
	queryErr       error
}

var _ Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{appendedBlocks: make(map[string][]Block)}
}

func (f *fakeClient) CreatePage(_ context.Context, req *CreatePageRequest) (*Page, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}

	f.createdPages = append(f.createdPages, req)

	return &Page{ID: "fake-page", URL: "https://notion.so/fake-page"}, nil
}

func (f *fakeClient) QueryDatabase(_ context.Context, _ string, _ *DatabaseQuery) ([]Page, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	return f.queryPages, nil
}

func (f *fakeClient) RetrieveDatabase(_ context.Context, _ string) (*Database, error) {
	return f.database, nil
}

func (f *fakeClient) ListBlockChildren(_ context.Context, blockID string) ([]Block, error) {
	return f.listChildren[blockID], nil
}

func (f *fakeClient) AppendBlockChildren(_ context.Context, blockID string, children []Block) error {
	f.appendedBlocks[blockID] = append(f.appendedBlocks[blockID], children...)

	return nil
}
