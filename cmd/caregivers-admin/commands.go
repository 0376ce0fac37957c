package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/caregivers/cliparse"
	"github.com/danielhkuo/caregivers/db"
	"github.com/danielhkuo/caregivers/dump"
	"github.com/danielhkuo/caregivers/models"
	"github.com/danielhkuo/caregivers/store"
)

var errAborted = errors.New("aborted")

type app struct {
	st  *store.Store
	in  *bufio.Reader
	out io.Writer
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{"report", "report <name> [-status s] [-q text] [-type t] [-city c] [-rule r]", runReport},
	{"export", "export [-format json|sql] [-table t] [-o file]", runExport},
	{"import", "import [-table t] [-i file] [-yes]", runImport},
	{"sync", "sync -from url [-from-type t] [-yes]", runSync},
	{"commission", "commission [-yes]", runCommission},
	{"purge-street", "purge-street -street name [-yes]", runPurgeStreet},
	{"purge-member-jobs", "purge-member-jobs -given name -surname name [-yes]", runPurgeMemberJobs},
	{"set-phone", "set-phone -given name -surname name -phone number", runSetPhone},
}

func usage() string {
	var b strings.Builder
	b.WriteString("usage: caregivers-admin [-d url] [-t type] <command> [flags]\n\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "  %s\n", c.usage)
	}
	return b.String()
}

// run parses global flags, opens the database and dispatches one command.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, rest, err := cliparse.Parse("caregivers-admin", args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return errors.New(usage())
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == rest[0] {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		return fmt.Errorf("unknown command %q\n%s", rest[0], usage())
	}

	st, closeDB, err := openStore(cfg.Dialect(), cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer closeDB()

	a := &app{st: st, in: bufio.NewReader(stdin), out: stdout}
	return cmd.run(ctx, a, rest[1:])
}

func openStore(dialect db.Dialect, url string) (*store.Store, func(), error) {
	conn, err := db.Open(dialect, url)
	if err != nil {
		return nil, nil, err
	}
	if err := db.CreateSchema(conn, dialect); err != nil {
		conn.Close()
		return nil, nil, err
	}
	return store.New(conn, dialect), func() { conn.Close() }, nil
}

// confirm asks before a destructive command unless -yes was given.
func (a *app) confirm(yes bool, prompt string) error {
	if yes {
		return nil
	}
	fmt.Fprintf(a.out, "%s [y/N] ", prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return nil
	}
	return errAborted
}

func (a *app) printDeleted(deleted []models.DeletedRows) {
	if len(deleted) == 0 {
		fmt.Fprintln(a.out, "nothing deleted")
		return
	}
	w := newTable(a.out)
	fmt.Fprintln(w, "TABLE\tROWS")
	for _, d := range deleted {
		fmt.Fprintf(w, "%s\t%s\n", d.Table, humanize.Comma(d.Rows))
	}
	w.Flush()
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func runExport(ctx context.Context, a *app, args []string) error {
	fs := newFlags("export")
	format := fs.String("format", "json", "json or sql")
	table := fs.String("table", "", "export a single table")
	outPath := fs.String("o", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		snap   models.Snapshot
		tables []store.Table
		err    error
	)
	if *table != "" {
		t, perr := store.ParseTable(*table)
		if perr != nil {
			return perr
		}
		tables = append(tables, t)
		snap, err = a.st.ReadTable(ctx, t)
	} else {
		snap, err = a.st.ReadAll(ctx)
	}
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch *format {
	case "json":
		err = dump.WriteJSON(&buf, snap)
	case "sql":
		err = dump.WriteSQL(&buf, snap, tables...)
	default:
		return fmt.Errorf("unknown format %q (want json or sql)", *format)
	}
	if err != nil {
		return err
	}

	if *outPath == "" {
		_, err = a.out.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(*outPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", *outPath, err)
	}
	slog.Info("export written", "path", *outPath, "format", *format, "size", humanize.Bytes(uint64(buf.Len())))
	return nil
}

func runImport(ctx context.Context, a *app, args []string) error {
	fs := newFlags("import")
	table := fs.String("table", "", "replace a single table")
	inPath := fs.String("i", "", "snapshot JSON file")
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("import: -i is required")
	}

	f, err := os.Open(*inPath)
	if err != nil {
		return err
	}
	defer f.Close()
	snap, err := dump.ReadJSON(f)
	if err != nil {
		return err
	}

	if *table != "" {
		t, err := store.ParseTable(*table)
		if err != nil {
			return err
		}
		if err := a.confirm(*yes, fmt.Sprintf("Replace every row of %s?", t)); err != nil {
			return err
		}
		if err := a.st.ReplaceTable(ctx, t, snap); err != nil {
			return err
		}
		slog.Info("table imported", "table", t, "path", *inPath)
		return nil
	}

	if err := a.confirm(*yes, "Replace every table?"); err != nil {
		return err
	}
	if err := a.st.ReplaceAll(ctx, snap); err != nil {
		return err
	}
	slog.Info("snapshot imported", "path", *inPath, "users", len(snap.Users))
	return nil
}

// runSync copies every table of a source database over the target.
func runSync(ctx context.Context, a *app, args []string) error {
	fs := newFlags("sync")
	from := fs.String("from", "", "source database URL")
	fromType := fs.String("from-type", "", "source database type (default: inferred)")
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *from == "" {
		return errors.New("sync: -from is required")
	}

	dialect, err := cliparse.ResolveDialect(*fromType, *from)
	if err != nil {
		return err
	}
	src, closeSrc, err := openStore(dialect, *from)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer closeSrc()

	snap, err := src.ReadAll(ctx)
	if err != nil {
		return err
	}
	if err := a.confirm(*yes, fmt.Sprintf("Overwrite the target with %s users from the %s source?", humanize.Comma(int64(len(snap.Users))), dialect)); err != nil {
		return err
	}
	if err := a.st.ReplaceAll(ctx, snap); err != nil {
		return err
	}
	slog.Info("sync complete", "from", dialect, "to", a.st.Dialect())
	return nil
}

func runCommission(ctx context.Context, a *app, args []string) error {
	fs := newFlags("commission")
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.confirm(*yes, "Apply commission to every hourly rate?"); err != nil {
		return err
	}

	n, err := a.st.ApplyCommission(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s caregivers updated\n", humanize.Comma(n))
	return nil
}

func runPurgeStreet(ctx context.Context, a *app, args []string) error {
	fs := newFlags("purge-street")
	street := fs.String("street", "", "street name")
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.confirm(*yes, fmt.Sprintf("Delete every member living on %q?", *street)); err != nil {
		return err
	}

	deleted, err := a.st.DeleteMembersOnStreet(ctx, *street)
	if err != nil {
		return err
	}
	a.printDeleted(deleted)
	return nil
}

func runPurgeMemberJobs(ctx context.Context, a *app, args []string) error {
	fs := newFlags("purge-member-jobs")
	given := fs.String("given", "", "member given name")
	surname := fs.String("surname", "", "member surname")
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.confirm(*yes, fmt.Sprintf("Delete every job posted by %s %s?", *given, *surname)); err != nil {
		return err
	}

	deleted, err := a.st.DeleteJobsByMemberName(ctx, *given, *surname)
	if err != nil {
		return err
	}
	a.printDeleted(deleted)
	return nil
}

func runSetPhone(ctx context.Context, a *app, args []string) error {
	fs := newFlags("set-phone")
	given := fs.String("given", "", "user given name")
	surname := fs.String("surname", "", "user surname")
	phone := fs.String("phone", "", "new phone number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	n, err := a.st.UpdatePhoneByName(ctx, *given, *surname, *phone)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s users updated\n", humanize.Comma(n))
	return nil
}
