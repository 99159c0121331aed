package service

import (
	"context"
	"strconv"

	"github.com/stepcontest/contest-admin/internal/apiclient"
)

// Requester issues admin API requests. *apiclient.Client satisfies it.
type Requester interface {
	Do(ctx context.Context, req apiclient.Request, out any) error
}

var _ Requester = (*apiclient.Client)(nil)

// call issues req through api and decodes into a new T.
func call[T any](ctx context.Context, api Requester, req apiclient.Request) (T, error) {
	var out T
	err := api.Do(ctx, req, &out)
	return out, err
}

func resourcePath(base string, id int64) string {
	return base + "/" + strconv.FormatInt(id, 10)
}

func requireAPI(api Requester, name string) {
	if api == nil {
		panic(name + ": API requester is required")
	}
}
