package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"draftPublisher/internal/cli/commands"
	"draftPublisher/internal/cli/ui"
	"draftPublisher/internal/logger"
	"draftPublisher/internal/publisher"

	"github.com/chzyer/readline"
)

type Deps struct {
	Studio     commands.Studio
	Visibility publisher.Visibility
	Library    commands.LibraryProvider
	Uploads    commands.UploadLister
	VideosDir  string
}

type CLI struct {
	log            *logger.Zap
	rl             *readline.Instance
	stdin          *bufio.Reader
	out            io.Writer
	asker          *asker
	publishHandler *commands.PublishHandler
	libraryHandler *commands.LibraryHandler
	uploadsHandler *commands.UploadsHandler
	browserHandler *commands.BrowserHandler
}

func New(deps Deps, log *logger.Zap) *CLI {
	cli := &CLI{
		log: log,
		out: os.Stdout,
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".draft-publisher-history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Warn("Не удалось инициализировать readline, будет использован fallback режим")
		cli.stdin = bufio.NewReader(os.Stdin)
	} else {
		cli.rl = rl
		cli.out = rl.Stdout()
	}

	cli.init(deps, cli.readLine)
	return cli
}

func (c *CLI) init(deps Deps, readLine func() (string, error)) {
	c.asker = &asker{readLine: readLine, out: c.out}
	c.publishHandler = commands.NewPublishHandler(deps.Studio, deps.Visibility, c.out, c.log.Logger)
	c.libraryHandler = commands.NewLibraryHandler(deps.Library, c.asker, deps.VideosDir, c.out)
	c.uploadsHandler = commands.NewUploadsHandler(deps.Uploads, c.out, c.log.Logger)
	c.browserHandler = commands.NewBrowserHandler(deps.Studio, readLine, c.out)
}

func (c *CLI) readLine() (string, error) {
	if c.rl != nil {
		return c.rl.Readline()
	}
	// Fallback для работы без readline
	fmt.Fprint(c.out, ui.ColorCyan+"> "+ui.ColorReset)
	line, err := c.stdin.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *CLI) closeReadline() {
	if c.rl != nil {
		c.rl.Close()
	}
}

func (c *CLI) Run(ctx context.Context) {
	ui.PrintWelcome(c.out)
	defer c.closeReadline()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out, "\n"+ui.ColorCyan+ui.IconWave+" Получен сигнал завершения..."+ui.ColorReset)
			return
		default:
		}

		line, err := c.readLine()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return
			}
			continue
		} else if err != nil {
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !c.handleCommand(ctx, line) {
			return
		}
	}
}

// handleCommand выполняет команду и возвращает false, если пора выходить.
func (c *CLI) handleCommand(ctx context.Context, line string) bool {
	switch {
	case line == "exit":
		fmt.Fprintln(c.out, ui.ColorCyan+ui.IconWave+" До свидания!"+ui.ColorReset)
		return false

	case line == "clear":
		ui.ClearScreen(c.out)

	case line == "publish" || strings.HasPrefix(line, "publish "):
		c.publishHandler.Publish(ctx, strings.TrimPrefix(line, "publish"))

	case line == "upload":
		c.libraryHandler.Upload(ctx)

	case line == "rename":
		c.libraryHandler.Rename(ctx)

	case line == "uploads":
		c.uploadsHandler.List(ctx)

	case line == "open-persistent":
		c.browserHandler.OpenPersistent(ctx)

	case strings.HasPrefix(line, "open "):
		url := strings.TrimPrefix(line, "open ")
		c.browserHandler.Open(ctx, url)

	default:
		ui.PrintHelp(c.out)
	}
	return true
}
