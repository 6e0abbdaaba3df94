package formatter

import (
	"context"

	"github.com/dagger/testctx"
	"github.com/stretchr/testify/require"

	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/span"
	"github.com/carthage-software/fennec/pkg/token"
)

func (FormatSuite) TestCommentCursor(ctx context.Context, t *testctx.T) {
	cursor := NewCommentCursor([]ast.Trivia{
		{Kind: token.SingleLineComment, Value: "// one", Span: span.New(0, 6)},
		{Kind: token.Whitespace, Value: "\n", Span: span.New(6, 7)},
		{Kind: token.MultiLineComment, Value: "/* two */", Span: span.New(20, 29)},
		{Kind: token.HashComment, Value: "# three", Span: span.New(40, 47)},
	})
	require.Equal(t, 3, cursor.Remaining())

	t.Run("looks past comments before the span", func(ctx context.Context, t *testctx.T) {
		require.True(t, cursor.Within(span.New(10, 30)))
		require.True(t, cursor.Within(span.New(35, 50)))
		require.False(t, cursor.Within(span.New(10, 19)))
		require.False(t, cursor.Within(span.New(21, 35)))
		require.Equal(t, 3, cursor.Remaining())
	})

	t.Run("ignores consumed comments", func(ctx context.Context, t *testctx.T) {
		require.Len(t, cursor.ConsumeUpTo(29), 2)
		require.False(t, cursor.Within(span.New(0, 30)))
		require.True(t, cursor.Within(span.New(0, 50)))
	})
}
