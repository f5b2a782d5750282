package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jcantosz/jotoba/pkg/completion"
	"github.com/jcantosz/jotoba/pkg/config"
	"github.com/jcantosz/jotoba/pkg/index"
	"github.com/jcantosz/jotoba/pkg/query"
	"github.com/jcantosz/jotoba/pkg/search"
	kanjisearch "github.com/jcantosz/jotoba/pkg/search/kanji"
	namesearch "github.com/jcantosz/jotoba/pkg/search/name"
	sentencesearch "github.com/jcantosz/jotoba/pkg/search/sentence"
	wordsearch "github.com/jcantosz/jotoba/pkg/search/word"
	"github.com/jcantosz/jotoba/pkg/sentreader"
	"github.com/jcantosz/jotoba/pkg/storage"
	"github.com/jcantosz/jotoba/pkg/worker"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	queryFlag := flag.String("query", "", "Search query")
	targetFlag := flag.String("target", "words", "Search target: words, kanji, names, sentences")
	langFlag := flag.String("lang", "en", "User language code")
	pageFlag := flag.Int("page", 1, "Result page")
	completeFlag := flag.Bool("complete", false, "Return completion suggestions instead of results")
	dictFlag := flag.String("import-dict", "", "Path to a jmdict-simplified JSON file to import")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	conn, err := sql.Open("sqlite3", cfg.DatabasePath())
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath()).Msg("failed to open storage database")
	}
	defer conn.Close()

	if err := storage.InitDB(conn); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage schema")
	}

	if *dictFlag != "" {
		importDictionary(conn, *dictFlag)
		return
	}

	if *queryFlag == "" {
		log.Fatal().Msg("provide a -query or -import-dict")
	}

	res, err := loadResources(ctx, cfg, conn)
	if err != nil {
		log.Fatal().Err(err).Msg(search.ErrEngineUnavailable.Error())
	}

	settings := query.DefaultSettings()
	settings.UserLang = storage.LanguageFromCode(*langFlag)
	target := query.TargetFromName(*targetFlag)

	// Searches are CPU-bound; run them on the worker pool like the server
	// does, one job per query.
	pool := worker.NewPool(cfg.Concurrency, cfg.Concurrency*2)
	pool.Start(ctx)
	defer pool.Close()

	slowAfter := time.Duration(cfg.ReportQueriesAfter) * time.Second
	for _, raw := range strings.Split(*queryFlag, ",") {
		raw := strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		done, err := pool.Run(func(ctx context.Context) error {
			started := time.Now()
			runErr := runQuery(res, raw, target, settings, *pageFlag, *completeFlag)
			if took := time.Since(started); took > slowAfter {
				log.Warn().Str("query", raw).Dur("took", took).Msg("slow query")
			}
			return runErr
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to dispatch query")
		}
		if err := <-done; err != nil {
			log.Error().Err(err).Str("query", raw).Msg("query failed")
		}
	}
}

func importDictionary(conn *sql.DB, path string) {
	log.Info().Str("path", path).Msg("loading dictionary")
	entries, err := storage.LoadJMdictSimplified(path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}
	log.Info().Int("entries", len(entries)).Msg("importing")

	count, err := storage.ImportJMdict(conn, entries)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to import dictionary")
	}
	log.Info().Int("imported", count).Msg("dictionary import finished")
}

// loadResources reads all stores in parallel and builds the runtime indexes.
func loadResources(ctx context.Context, cfg *config.Config, conn *sql.DB) (*search.Resources, error) {
	started := time.Now()

	var (
		words     *storage.WordStore
		kanji     *storage.KanjiStore
		names     *storage.NameStore
		sentences *storage.SentenceStore
		parser    *sentreader.Parser
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) { words, err = storage.LoadWords(conn); return })
	g.Go(func() (err error) { kanji, err = storage.LoadKanji(conn); return })
	g.Go(func() (err error) { names, err = storage.LoadNames(conn); return })
	g.Go(func() (err error) { sentences, err = storage.LoadSentences(conn); return })
	g.Go(func() (err error) {
		parser, err = sentreader.NewParser(sentreader.DictKind(cfg.UnidicDict))
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := search.BuildResources(words, kanji, names, sentences, parser)
	res.Thresholds = search.Thresholds{
		Native:            float32(cfg.NativeThreshold),
		Names:             float32(cfg.NameThreshold),
		Foreign:           float32(cfg.ForeignThreshold),
		RomajiFallbackMax: cfg.RomajiFallbackMax,
	}

	freq, err := index.LoadReadingFreq(cfg.IndexSourcePath)
	if err != nil {
		return nil, err
	}
	res.ReadingFreq = freq

	log.Info().
		Int("words", words.Len()).
		Int("kanji", kanji.Len()).
		Int("names", names.Len()).
		Int("sentences", sentences.Len()).
		Dur("took", time.Since(started)).
		Msg("resources loaded")
	return res, nil
}

func runQuery(res *search.Resources, raw string, target query.Target, settings query.UserSettings, page int, complete bool) error {
	if complete {
		resp, err := completion.Suggestions(res, completion.Request{Input: raw, Lang: settings.UserLang.Code(), Target: target})
		if err != nil {
			return err
		}
		for _, pair := range resp.Suggestions {
			if pair.Secondary != "" {
				fmt.Printf("%s (%s)\n", pair.Primary, pair.Secondary)
			} else {
				fmt.Println(pair.Primary)
			}
		}
		return nil
	}

	q, err := query.NewParser(raw, target, settings).WithPage(page).Parse()
	if err != nil {
		return err
	}

	switch target {
	case query.TargetKanji:
		result, err := kanjisearch.Search(res, q)
		if err != nil {
			return err
		}
		for _, item := range result.Items {
			fmt.Printf("%c  on: %s  kun: %s\n", item.Kanji.Literal,
				strings.Join(item.Kanji.Onyomi, "、"), strings.Join(item.Kanji.Kunyomi, "、"))
		}
	case query.TargetNames:
		result, err := namesearch.Search(res, q)
		if err != nil {
			return err
		}
		for _, n := range result.Items {
			fmt.Printf("%s (%s)\n", n.GetReading(), n.Kana)
		}
	case query.TargetSentences:
		result, err := sentencesearch.Search(res, q)
		if err != nil {
			return err
		}
		for _, s := range result.Items {
			fmt.Printf("%s\n  %s\n", s.Content, s.Translation)
		}
	default:
		result, err := wordsearch.Search(res, q)
		if err != nil {
			return err
		}
		printWordResult(result)
	}
	return nil
}

func printWordResult(result *wordsearch.WordResult) {
	if info := result.InflectionInfo; info != nil {
		names := make([]string, 0, len(info.Inflections))
		for _, infl := range info.Inflections {
			names = append(names, infl.Name())
		}
		fmt.Printf("%s + %s\n", info.Lexeme, strings.Join(names, " + "))
	}
	for _, k := range result.Kanji {
		fmt.Printf("%c  %s\n", k.Literal, strings.Join(k.Meanings, ", "))
	}
	for _, w := range result.Words {
		var glosses []string
		for _, sense := range w.Senses {
			for _, g := range sense.Glosses {
				glosses = append(glosses, g.Gloss)
			}
		}
		fmt.Printf("%s [%s]  %s\n", w.GetReading(), w.GetKana(), strings.Join(glosses, "; "))
	}
}
