// Package logger はアプリケーション全体のslogロガーを構成します。
package logger

import (
	"io"
	"log/slog"
	"os"
)

// New は環境に応じたロガーを生成し、slogのデフォルトに設定します。
// 本番ではJSON、それ以外ではテキスト形式でデバッグレベルまで出力します。
// 本番かどうかの判定はconfig.Config.IsProductionに一本化しています。
func New(production bool) *slog.Logger {
	l := newLogger(os.Stdout, production)
	slog.SetDefault(l)
	return l
}

func newLogger(w io.Writer, production bool) *slog.Logger {
	if production {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
