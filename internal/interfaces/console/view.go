// Package console renders the dashboard in a terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/shoprank/backend/internal/domain/listing"
)

const (
	// EmptyResultsMessage replaces the table when there is nothing to show
	EmptyResultsMessage = "검색 결과가 없습니다"
	// LoadingMessage is printed while a load is in flight
	LoadingMessage = "데이터를 불러오는 중..."
	// RetryHint follows every load error in one-shot mode
	RetryHint = "다시 시도하려면 명령을 다시 실행하세요."
	// InteractiveRetryHint follows load errors inside a Session
	InteractiveRetryHint = "다시 시도하려면 r 을 입력하세요."

	maxTitleRunes = 40
)

// View writes dashboard output to an io.Writer and saves downloads to a directory
type View struct {
	mu        sync.Mutex
	out       io.Writer
	exportDir string
	retryHint string
	logger    *zap.Logger
}

// Option configures a View
type Option func(*View)

// WithExportDir sets the directory downloads are written to
func WithExportDir(dir string) Option {
	return func(v *View) {
		v.exportDir = dir
	}
}

// WithRetryHint replaces the line printed after a load error
func WithRetryHint(hint string) Option {
	return func(v *View) {
		v.retryHint = hint
	}
}

// WithLogger sets the view logger
func WithLogger(logger *zap.Logger) Option {
	return func(v *View) {
		v.logger = logger
	}
}

// NewView creates a console view writing to out
func NewView(out io.Writer, opts ...Option) *View {
	v := &View{
		out:       out,
		exportDir: ".",
		retryHint: RetryHint,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ShowLoading prints the loading indicator
func (v *View) ShowLoading() {
	v.println(LoadingMessage)
}

// Render prints items as an aligned table
func (v *View) Render(items []listing.Listing) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(items) == 0 {
		fmt.Fprintln(v.out, EmptyResultsMessage)
		return
	}

	tw := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "순위\t상품명\t가격\t쇼핑몰\t할인\t평점")
	for _, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			item.Rank,
			truncate(item.Title, maxTitleRunes),
			item.Price,
			item.MallName,
			optionalString(item.Discount),
			rating(item),
		)
	}
	if err := tw.Flush(); err != nil {
		v.logger.Warn("Failed to flush table", zap.Error(err))
	}
}

// ShowResults prints the result header line
func (v *View) ShowResults(title string, count int) {
	v.println(fmt.Sprintf("%s (%d개 상품)", title, count))
}

// ShowError prints a load failure with a retry hint
func (v *View) ShowError(message string) {
	v.println(fmt.Sprintf("오류: %s\n%s", message, v.retryHint))
}

// PromptDownload writes data under the export directory
func (v *View) PromptDownload(data []byte, filename string) error {
	path := filepath.Join(v.exportDir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		v.logger.Error("Failed to save export", zap.String("path", path), zap.Error(err))
		v.println(fmt.Sprintf("파일 저장 실패: %v", err))
		return err
	}

	v.logger.Info("Export saved", zap.String("path", path), zap.Int("bytes", len(data)))
	v.println("저장됨: " + path)
	return nil
}

// Alert prints a notice
func (v *View) Alert(message string) {
	v.println("알림: " + message)
}

func (v *View) println(line string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, line)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func optionalString(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func rating(item listing.Listing) string {
	if item.Rating == nil {
		return "-"
	}
	out := fmt.Sprintf("%.1f", *item.Rating)
	if item.ReviewCount != nil {
		out += fmt.Sprintf(" (%d)", *item.ReviewCount)
	}
	return strings.TrimSpace(out)
}
