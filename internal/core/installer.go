package core

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Failure reasons recorded against individual references.
const (
	reasonTraversal = "blocked: path traversal"
	reasonSetDir    = "blocked: resolves to the set directory"
	reasonDuplicate = "duplicate of "
)

var hostFileRegexp = regexp.MustCompile(`[^\w.-]`)

// ResourceFetcher retrieves a URL. Implementations report every failure as
// a FetchResult value.
type ResourceFetcher interface {
	Fetch(ctx context.Context, rawURL string) FetchResult
}

// InstallerOptions configures an Installer.
type InstallerOptions struct {
	SetsRoot    string          // Directory holding one subdirectory per set
	Fetcher     ResourceFetcher // Defaults to NewFetcher with default options
	Concurrency int             // Parallel reference fetches; <= 1 means sequential
	Logger      *slog.Logger
}

// Installer fetches a primary document and the resources it references
// into a ResourceSet directory under the sets root.
type Installer struct {
	setsRoot    string
	fetcher     ResourceFetcher
	concurrency int
	log         *slog.Logger
}

// NewInstaller creates an Installer.
func NewInstaller(opts InstallerOptions) *Installer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = NewFetcher(FetcherOptions{Logger: logger})
	}
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Installer{
		setsRoot:    opts.SetsRoot,
		fetcher:     fetcher,
		concurrency: concurrency,
		log:         logger,
	}
}

// refJob is one discovered reference and where it would be written.
type refJob struct {
	ref    string
	rel    string // cleaned, slash-separated path relative to the set dir
	target string
	reason string // non-empty when rejected before fetching
}

// refOutcome is the result of fetching and persisting one reference.
type refOutcome struct {
	ok     bool
	reason string
}

// Install fetches rawURL into the set named nameOverride, or a name derived
// from the URL's final path segment when nameOverride is empty.
//
// Expected failures (bad input, fetch errors, blocked references) are
// described by the returned report. The error is reserved for unexpected
// filesystem faults.
func (inst *Installer) Install(ctx context.Context, rawURL, nameOverride string) (*InstallReport, error) {
	rawURL = strings.TrimSpace(rawURL)
	report := &InstallReport{
		Source:  rawURL,
		Fetched: []string{},
		Failed:  []FailedReference{},
	}

	if rawURL == "" {
		return report.invalid("URL is required"), nil
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return report.invalid("URL must start with http:// or https://"), nil
	}

	filename, err := primaryFilename(rawURL)
	if err != nil {
		return report.invalid(err.Error()), nil
	}

	name := strings.TrimSpace(nameOverride)
	if name == "" {
		name = strings.TrimSuffix(filename, path.Ext(filename))
	}
	name = SanitizeName(name)
	if name == "" {
		return report.invalid("cannot derive a skill name from the URL; pass a name"), nil
	}
	report.Name = name
	report.Filename = filename

	root, err := filepath.Abs(inst.setsRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving sets root: %w", err)
	}
	setDir := filepath.Join(root, name)
	primaryPath, ok := ResolveWithin(setDir, filename)
	if !ok || primaryPath == setDir {
		return report.invalid(fmt.Sprintf("invalid file name %q in URL", filename)), nil
	}

	log := inst.log.With("skill", name)
	log.Debug("fetching primary document", "url", rawURL)

	primary := inst.fetcher.Fetch(ctx, rawURL)
	if !primary.OK {
		report.Kind = FailureFetch
		report.Status = primary.Status
		report.Message = primaryFailureMessage(rawURL, primary)
		return report, nil
	}

	if err := os.MkdirAll(setDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating skill directory: %w", err)
	}
	if err := os.WriteFile(primaryPath, []byte(primary.Content), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", filename, err)
	}

	report.Success = true
	report.Dir = setDir
	report.Fetched = append(report.Fetched, filename)

	jobs := planReferences(setDir, primaryPath, ScanReferences(primary.Content))
	log.Debug("scanned references", "count", len(jobs))

	outcomes := inst.fetchReferences(ctx, baseURL(rawURL), jobs)
	for i, job := range jobs {
		out := outcomes[i]
		if out.ok {
			report.Fetched = append(report.Fetched, job.rel)
			continue
		}
		if job.reason == reasonTraversal {
			log.Warn("blocked reference", "ref", job.ref)
		}
		report.Failed = append(report.Failed, FailedReference{Path: job.ref, Reason: out.reason})
	}

	report.Message = fmt.Sprintf("Installed %s (%d file(s))", name, len(report.Fetched))
	if len(report.Failed) > 0 {
		report.Message += fmt.Sprintf(", %d failed", len(report.Failed))
	}

	if err := AddOrUpdateLockEntry(root, LockedSet{
		Name:        name,
		Source:      rawURL,
		Files:       report.Fetched,
		InstalledAt: time.Now().UTC(),
	}); err != nil {
		log.Warn("failed to update lock file", "error", err)
	}

	return report, nil
}

// Reinstall re-runs Install for recorded sets using their recorded source
// URLs. An empty name reinstalls every recorded set.
func (inst *Installer) Reinstall(ctx context.Context, name string) ([]*InstallReport, error) {
	root, err := filepath.Abs(inst.setsRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving sets root: %w", err)
	}
	lf, err := ReadLockFile(root)
	if err != nil {
		return nil, err
	}

	entries := lf.Sets
	if name != "" {
		entry, ok := lf.Find(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q has no install record", ErrSetNotFound, name)
		}
		entries = []LockedSet{entry}
	}

	var reports []*InstallReport
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		r, err := inst.Install(ctx, e.Source, e.Name)
		if err != nil {
			return reports, fmt.Errorf("reinstalling %q: %w", e.Name, err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// fetchReferences fetches and persists every accepted job. Outcomes are
// slotted by index so callers see them in discovery order regardless of
// concurrency.
func (inst *Installer) fetchReferences(ctx context.Context, base string, jobs []refJob) []refOutcome {
	outcomes := make([]refOutcome, len(jobs))

	var g errgroup.Group
	g.SetLimit(inst.concurrency)
	for i, job := range jobs {
		if job.reason != "" {
			outcomes[i] = refOutcome{reason: job.reason}
			continue
		}
		g.Go(func() error {
			outcomes[i] = inst.fetchReference(ctx, base, job)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (inst *Installer) fetchReference(ctx context.Context, base string, job refJob) refOutcome {
	res := inst.fetcher.Fetch(ctx, base+"/"+job.ref)
	if !res.OK {
		reason := fmt.Sprintf("HTTP %d", res.Status)
		if res.Err != "" && res.Err != reason {
			reason += ": " + res.Err
		}
		return refOutcome{reason: reason}
	}

	if err := os.MkdirAll(filepath.Dir(job.target), 0o755); err != nil {
		return refOutcome{reason: fmt.Sprintf("write failed: %v", err)}
	}
	if err := os.WriteFile(job.target, []byte(res.Content), 0o644); err != nil {
		return refOutcome{reason: fmt.Sprintf("write failed: %v", err)}
	}
	return refOutcome{ok: true}
}

// planReferences runs every reference through the sandbox guard before any
// network or filesystem work. References that land on a path already
// planned (including the primary document) are dropped.
func planReferences(setDir, primaryPath string, refs []string) []refJob {
	// target -> set-relative path of the job that already claimed it
	planned := map[string]string{primaryPath: filepath.Base(primaryPath)}
	var jobs []refJob
	for _, ref := range refs {
		target, ok := ResolveWithin(setDir, ref)
		if !ok {
			jobs = append(jobs, refJob{ref: ref, reason: reasonTraversal})
			continue
		}
		if target == setDir {
			jobs = append(jobs, refJob{ref: ref, reason: reasonSetDir})
			continue
		}
		if prev, dup := planned[target]; dup {
			jobs = append(jobs, refJob{ref: ref, reason: reasonDuplicate + prev})
			continue
		}

		rel, err := filepath.Rel(setDir, target)
		if err != nil {
			jobs = append(jobs, refJob{ref: ref, reason: reasonTraversal})
			continue
		}
		rel = filepath.ToSlash(rel)
		planned[target] = rel
		jobs = append(jobs, refJob{ref: ref, rel: rel, target: target})
	}
	return jobs
}

// primaryFilename returns the last non-empty path segment of rawURL. A URL
// with no path segment (a bare host) is named after its host, with
// characters outside [\w.-] replaced by '-'.
func primaryFilename(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %v", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL has no host")
	}
	name := path.Base(u.Path)
	switch name {
	case ".", "/":
		return hostFileRegexp.ReplaceAllString(u.Host, "-"), nil
	case "..":
		return "", fmt.Errorf("URL path ends in %q", "..")
	}
	return name, nil
}

// baseURL strips the final path segment from rawURL. A URL whose last '/'
// belongs to the scheme marker (e.g. "http://host") is returned unchanged.
func baseURL(rawURL string) string {
	schemeEnd := strings.Index(rawURL, "://")
	idx := strings.LastIndex(rawURL, "/")
	if schemeEnd >= 0 && idx > schemeEnd+2 {
		return rawURL[:idx]
	}
	return rawURL
}

func primaryFailureMessage(rawURL string, res FetchResult) string {
	detail := res.Err
	if res.Status >= 300 && strings.TrimSpace(res.Content) != "" {
		detail = res.Content
	}
	if res.Status == 0 {
		return fmt.Sprintf("Failed to fetch %s: %s", rawURL, snippet(detail))
	}
	return fmt.Sprintf("Failed to fetch %s: HTTP %d - %s", rawURL, res.Status, snippet(detail))
}

func (r *InstallReport) invalid(msg string) *InstallReport {
	r.Success = false
	r.Kind = FailureInvalidInput
	r.Message = msg
	return r
}
