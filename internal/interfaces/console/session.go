package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// SessionHelp lists the commands a Session understands
const SessionHelp = `명령:
  p <coupang|naver>   플랫폼 변경
  c <카테고리>         카테고리 변경 (all, fashion, beauty, digital, sports, home, food, baby, pet)
  s <sim|date|asc|dsc> 정렬 변경
  q <검색어>           검색어 변경 (비우면 기본 검색어)
  r                   다시 불러오기
  e                   CSV 저장
  h                   도움말
  x                   종료`

// Controller is the part of the dashboard controller a Session drives
type Controller interface {
	SetPlatform(ctx context.Context, platform string) error
	SetCategory(ctx context.Context, category string) error
	SetSort(ctx context.Context, sort string) error
	SetQuery(ctx context.Context, query string) error
	Retry(ctx context.Context) error
	Export() error
}

// Session reads one command per line and applies it to the controller.
// Load failures are already shown by the view, so they only reach the log here.
type Session struct {
	controller Controller
	out        io.Writer
	logger     *zap.Logger
}

// NewSession creates a session writing prompts and command errors to out
func NewSession(controller Controller, out io.Writer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{controller: controller, out: out, logger: logger}
}

// Run processes commands from in until EOF, the exit command or ctx is done
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(s.out, SessionHelp)

	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		arg = strings.TrimSpace(arg)

		var err error
		switch cmd {
		case "":
			continue
		case "x", "exit", "quit":
			return nil
		case "h", "help":
			fmt.Fprintln(s.out, SessionHelp)
			continue
		case "p":
			err = s.requireArg(ctx, cmd, arg, s.controller.SetPlatform)
		case "c":
			err = s.requireArg(ctx, cmd, arg, s.controller.SetCategory)
		case "s":
			err = s.requireArg(ctx, cmd, arg, s.controller.SetSort)
		case "q":
			err = s.controller.SetQuery(ctx, arg)
		case "r":
			err = s.controller.Retry(ctx)
		case "e":
			if err = s.controller.Export(); err != nil {
				fmt.Fprintf(s.out, "저장 실패: %v\n", err)
			}
		default:
			fmt.Fprintf(s.out, "알 수 없는 명령: %s (h: 도움말)\n", cmd)
			continue
		}

		if err != nil {
			s.logger.Debug("Command failed", zap.String("command", cmd), zap.Error(err))
		}
	}
}

func (s *Session) requireArg(ctx context.Context, cmd, arg string, apply func(context.Context, string) error) error {
	if arg == "" {
		fmt.Fprintf(s.out, "%s 명령에는 값이 필요합니다.\n", cmd)
		return nil
	}
	return apply(ctx, arg)
}
