package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cognicore/tutur/internal/corpus"
	"github.com/cognicore/tutur/internal/htmltext"
	"github.com/cognicore/tutur/pkg/tutur"
	"github.com/cognicore/tutur/pkg/tutur/config"
	"github.com/cognicore/tutur/pkg/tutur/store"
	"github.com/cognicore/tutur/pkg/tutur/store/sqlite"
	"github.com/cognicore/tutur/pkg/tutur/tokenize"
	"github.com/cognicore/tutur/pkg/tutur/tree"
)

func main() {
	var (
		lexiconPath     = flag.String("lexicon", "", "Lexicon YAML (base words and tagged words)")
		patternsPath    = flag.String("patterns", "", "Regex tag table YAML")
		transitionsPath = flag.String("transitions", "", "Tag transition scores YAML")
		settingsPath    = flag.String("settings", "", "Stage settings YAML (optional)")
		inputPath       = flag.String("input", "-", "Input text file, - for stdin")
		corpusPath      = flag.String("corpus", "", "JSONL corpus to analyse in batch instead of --input")
		stripHTML       = flag.Bool("html", false, "Treat input as HTML and analyse its text")
		dbPath          = flag.String("db", "", "SQLite database to store analyses in (optional)")
		format          = flag.String("format", "json", "Output format: json or tree")
		find            = flag.String("find", "", "Query stored sentences by relation, e.g. nsubj=dia (needs --db)")
		topK            = flag.Int("topk", 10, "Maximum results for --find")
		verbose         = flag.Bool("v", false, "Log recovered chunking faults")
	)
	flag.Parse()

	if *format != "json" && *format != "tree" {
		log.Fatalf("--format must be json or tree, got %q", *format)
	}

	ctx := context.Background()

	var st store.Store
	if *dbPath != "" {
		var err error
		st, err = sqlite.OpenSQLite(ctx, *dbPath)
		if err != nil {
			log.Fatal("Failed to open database:", err)
		}
	}

	if *find != "" {
		if st == nil {
			log.Fatal("--find requires --db")
		}
		runFind(ctx, tutur.New(tutur.Options{Store: st}), *find, *topK, *format)
		return
	}

	loader := config.Loader{
		LexiconPath:     *lexiconPath,
		PatternsPath:    *patternsPath,
		TransitionsPath: *transitionsPath,
		SettingsPath:    *settingsPath,
	}
	components, err := loader.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	stats := components.KB.Stats()
	log.Printf("Knowledge base: %d words (%d tagged), %d patterns, %d transitions", stats.BaseWords, stats.TaggedWords, stats.Patterns, stats.Transitions)

	opts := tutur.Options{
		KB:        components.KB,
		Tokenizer: components.Tokenizer,
		Tagger:    components.Tagger,
		Extractor: components.Extractor,
		Store:     st,
	}
	if *verbose {
		opts.Logger = log.Default()
	} else {
		opts.Chunker = components.Chunker
	}
	engine := tutur.New(opts)
	defer engine.Close()

	if *corpusPath != "" {
		runCorpus(ctx, engine, *corpusPath, *stripHTML, st != nil, *format)
		return
	}

	text, err := readInput(*inputPath)
	if err != nil {
		log.Fatal("Failed to read input:", err)
	}
	if *stripHTML {
		text = htmltext.String(text)
	}

	analysis := engine.Analyze(text)
	log.Printf("Analysed %d tokens into %d sentences", len(analysis.Tokens), len(analysis.Records))
	if *verbose {
		if unknown := tokenize.NewChecker(components.KB).Invalid(analysis.Tokens); len(unknown) > 0 {
			log.Printf("Unknown morphemes: %s", strings.Join(unknown, " "))
		}
	}

	if st != nil {
		doc, err := engine.Save(ctx, *inputPath, text, analysis)
		if err != nil {
			log.Fatal("Failed to store analysis:", err)
		}
		log.Printf("Stored document %s", doc.ID)
	}

	if err := printAnalysis(os.Stdout, analysis, *format); err != nil {
		log.Fatal(err)
	}
}

// runCorpus analyses every corpus item. JSON output is one analysis per
// line.
func runCorpus(ctx context.Context, engine *tutur.Engine, path string, html, persist bool, format string) {
	items, skipped, err := corpus.Load(path)
	for _, s := range skipped {
		log.Printf("Warning: skipping line %d in %s: %v", s.Line, path, s.Err)
	}
	if err != nil {
		log.Fatal("Failed to load corpus:", err)
	}
	log.Printf("Loaded %d documents from %s", len(items), path)

	enc := json.NewEncoder(os.Stdout)
	stored := 0
	for i, item := range items {
		text := item.Text
		if html || item.HTML {
			text = htmltext.String(text)
		}
		analysis := engine.Analyze(text)

		if persist {
			if _, err := engine.Save(ctx, item.Source, text, analysis); err != nil {
				log.Printf("Failed to store document %d (%s): %v", i, item.Source, err)
			} else {
				stored++
			}
		}

		if format == "json" {
			if err := enc.Encode(struct {
				Source string `json:"source"`
				tutur.Analysis
			}{item.Source, analysis}); err != nil {
				log.Fatal(err)
			}
			continue
		}
		fmt.Printf("== %s\n", item.Source)
		if err := printAnalysis(os.Stdout, analysis, format); err != nil {
			log.Fatal(err)
		}
		fmt.Println()
	}
	if persist {
		log.Printf("Stored %d/%d documents", stored, len(items))
	}
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func printAnalysis(w io.Writer, a tutur.Analysis, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}

	fmt.Fprint(w, tree.Format(a.Tree))
	for _, r := range a.Records {
		fmt.Fprintf(w, "\n[%d] %s\n", r.SentenceID, r.Text)
		fmt.Fprintf(w, "  root:  %s\n", show(r.Root))
		fmt.Fprintf(w, "  nsubj: %s\n", show(r.NSubj))
		fmt.Fprintf(w, "  dobj:  %s\n", show(r.DObj))
		punct := make([]string, len(r.Punct))
		for i, p := range r.Punct {
			punct[i] = p.Text
		}
		fmt.Fprintf(w, "  punct: %s\n", strings.Join(punct, " "))
	}
	return nil
}

func show(t *tree.Token) string {
	if t == nil {
		return "-"
	}
	return t.Text + "/" + t.Tag
}

func runFind(ctx context.Context, engine *tutur.Engine, query string, limit int, format string) {
	defer engine.Close()

	rel, word, ok := strings.Cut(query, "=")
	if !ok {
		log.Fatalf("--find expects rel=word, got %q", query)
	}
	refs, err := engine.Lookup(ctx, rel, word, limit)
	if err != nil {
		log.Fatal("Lookup failed:", err)
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(refs); err != nil {
			log.Fatal(err)
		}
		return
	}
	for _, ref := range refs {
		fmt.Printf("%s\t%s#%d\t%s\n", ref.DocID, ref.Source, ref.Sentence, ref.Text)
	}
	log.Printf("%d sentences with %s=%s", len(refs), rel, word)
}
