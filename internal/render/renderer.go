package render

import "context"

type Renderer interface {
	RenderPage(ctx context.Context, view PageView) ([]byte, error)
}
