// Command coach is the terminal front end for the career assistant: an
// interactive chat against the coach endpoint plus job search and a
// saved-jobs list, all persisted between runs.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"lakshya-career-assistant/internal/config"
	"lakshya-career-assistant/internal/domain"
	"lakshya-career-assistant/internal/domain/model"
	"lakshya-career-assistant/internal/domain/ports/repository"
	"lakshya-career-assistant/internal/domain/ports/view"
	"lakshya-career-assistant/internal/infra/api"
	"lakshya-career-assistant/internal/infra/coach"
	pg "lakshya-career-assistant/internal/infra/db/postgres"
	"lakshya-career-assistant/internal/infra/i18n"
	"lakshya-career-assistant/internal/infra/logging"
	"lakshya-career-assistant/internal/infra/metrics"
	"lakshya-career-assistant/internal/infra/notify"
	red "lakshya-career-assistant/internal/infra/redis"
	"lakshya-career-assistant/internal/infra/storage"
	"lakshya-career-assistant/internal/saved"
	"lakshya-career-assistant/internal/session"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logging, verbose)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	baseLogger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	ctx = logging.WithIdentity(ctx, cfg.Chat.Identity)
	ctx = logging.WithSessID(ctx, uuid.NewString())
	logger := logging.With(ctx, baseLogger)

	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer cleanup()

	bundle, err := i18n.NewBundle(i18n.LocalesFS)
	if err != nil {
		log.Fatalf("locales: %v", err)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)

	stdin := bufio.NewScanner(os.Stdin)
	chatView := newTerminalChat(os.Stdout)
	confirm := view.ConfirmFunc(func(prompt string) bool {
		fmt.Printf("%s [y/N] ", prompt)
		if !stdin.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(stdin.Text()))
		return answer == "y" || answer == "yes"
	})

	sess := session.New(
		cfg.Chat.Identity,
		store,
		client,
		coach.NewCannedAnalysis(),
		chatView,
		confirm,
		bundle,
		logger,
		session.Options{
			UploadDelay: cfg.Chat.UploadDelay,
			Language:    model.NormalizeLanguage(cfg.Chat.Language),
		},
	)
	sess.Init(ctx)

	savedStore := saved.NewStore(store, newTerminalSaved(os.Stdout), logger)
	savedStore.Init(ctx)

	if cfg.Notifier.Enabled {
		worker := notify.NewWorker(
			cfg.Notifier.Interval,
			notify.NewStaticSource(),
			chatView,
			uuid.NewString,
			logger,
		)
		go func() { _ = worker.Run(ctx) }()
	}

	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		<-sigc
		cancel()
		os.Exit(0)
	}()

	repl(ctx, stdin, sess, savedStore, client)
}

func buildStore(ctx context.Context, cfg *config.Config) (repository.KeyValueStore, func(), error) {
	switch cfg.Storage.Backend {
	case "memory":
		return storage.NewMemoryStore(), func() {}, nil
	case "file":
		fs, err := storage.NewFileStore(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	case "redis":
		client, err := red.NewClient(ctx, &cfg.Storage.Redis)
		if err != nil {
			return nil, nil, err
		}
		return red.NewStateStore(client, cfg.Storage.Redis.TTL), func() { _ = client.Close() }, nil
	case "postgres":
		pool, err := pg.NewPgxPool(ctx, cfg.Storage.Postgres.URL, 4)
		if err != nil {
			return nil, nil, err
		}
		return pg.NewStateRepo(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

const helpText = `commands:
  /lang <code>       switch language (en, hi, hinglish, es, fr)
  /jobs <query>      search jobs by keyword
  /save <job-id>     toggle a job in the saved list
  /saved             list saved jobs
  /upload <file>     submit a document for review
  /export            write the transcript to a JSON file
  /clear             wipe the transcript (asks first)
  /help              this text
  /quit              exit
anything else is sent to the coach`

func repl(ctx context.Context, stdin *bufio.Scanner, sess *session.Session, savedStore *saved.Store, client *api.Client) {
	fmt.Println(helpText)
	for {
		fmt.Print("> ")
		if !stdin.Scan() {
			return
		}
		line := strings.TrimSpace(stdin.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "/") {
			if err := sess.Send(ctx, line); err != nil && !errors.Is(err, domain.ErrEmptyMessage) {
				fmt.Printf("  !! %v\n", err)
			}
			continue
		}

		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		switch cmd {
		case "/quit", "/exit":
			return
		case "/help":
			fmt.Println(helpText)
		case "/lang":
			sess.ChangeLanguage(ctx, arg)
		case "/jobs":
			searchJobs(ctx, client, savedStore, arg)
		case "/save":
			if arg == "" {
				fmt.Println("  usage: /save <job-id>")
				continue
			}
			savedStore.Dispatch(ctx, saved.ActionSave, arg)
		case "/saved":
			listSaved(ctx, savedStore)
		case "/upload":
			if arg == "" {
				fmt.Println("  usage: /upload <file>")
				continue
			}
			if err := sess.HandleAttachment(ctx, arg); err != nil {
				fmt.Printf("  !! %v\n", err)
			}
		case "/export":
			exportTranscript(sess)
		case "/clear":
			if err := sess.Clear(ctx); err != nil && !errors.Is(err, domain.ErrNotConfirmed) {
				fmt.Printf("  !! %v\n", err)
			}
		default:
			fmt.Printf("  unknown command %s (try /help)\n", cmd)
		}
	}
}

func searchJobs(ctx context.Context, client *api.Client, savedStore *saved.Store, query string) {
	params := map[string]any{}
	if query != "" {
		params["what"] = query
	}
	result, err := client.Search(ctx, params)
	if err != nil {
		fmt.Printf("  !! job search failed: %v\n", err)
		return
	}
	fmt.Printf("  %s\n", result.Message)
	ids := make([]string, 0, len(result.Jobs))
	for _, j := range result.Jobs {
		printJob(os.Stdout, j)
		ids = append(ids, j.ID)
	}
	savedStore.Track(ctx, ids...)
}

func listSaved(ctx context.Context, savedStore *saved.Store) {
	set := savedStore.List(ctx)
	if len(set) == 0 {
		fmt.Println("  no saved jobs yet")
		return
	}
	for _, rec := range set {
		fmt.Printf("  %s (saved %s)\n", rec.JobID, rec.SavedAt.Format("2006-01-02"))
	}
}

func exportTranscript(sess *session.Session) {
	art, err := sess.Export()
	if err != nil {
		fmt.Printf("  !! export failed: %v\n", err)
		return
	}
	if err := os.WriteFile(art.Filename, art.Data, 0o644); err != nil {
		fmt.Printf("  !! write %s: %v\n", art.Filename, err)
		return
	}
	fmt.Printf("  transcript written to %s\n", art.Filename)
}
