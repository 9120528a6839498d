package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/doctrack/internal/api"
	"github.com/dmitrijs2005/doctrack/internal/filex"
	"github.com/dmitrijs2005/doctrack/internal/netx"
)

const timeLayout = "2006-01-02 15:04"

// transfer seams for tests.
var (
	uploadFn   = netx.UploadToPresignedURL
	downloadFn = netx.DownloadFromPresignedURL
)

// Upload handles "upload <path>": it registers the document and PUTs the
// file to the returned URL. A failed transfer removes the record again.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("upload <path>")
	}
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	doc, url, err := a.client.CreateDocument(ctx, filepath.Base(path))
	if err != nil {
		return err
	}

	if err := uploadFn(ctx, url, f, fi.Size()); err != nil {
		if derr := a.client.DeleteDocument(ctx, doc.ID); derr != nil {
			fmt.Fprintf(a.out, "Could not remove document %d after failed upload: %v\n", doc.ID, derr)
		}
		return err
	}

	fmt.Fprintf(a.out, "Uploaded %s as document %d (%s)\n", doc.Filename, doc.ID, doc.Status)
	return nil
}

func (a *App) Docs(ctx context.Context) error {
	docs, err := a.client.ListDocuments(ctx)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintln(a.out, "No documents")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFILENAME\tSTATUS\tUPLOADER\tUPDATED")
	for _, d := range docs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", d.ID, d.Filename, d.Status, d.UploaderID, d.UpdatedAt.Format(timeLayout))
	}
	return tw.Flush()
}

func (a *App) printDocument(d *api.Document) {
	fmt.Fprintf(a.out, "id: %d\nfilename: %s\nstatus: %s\nuploader: %d\ncreated: %s\nupdated: %s\n",
		d.ID, d.Filename, d.Status, d.UploaderID, d.CreatedAt.Format(timeLayout), d.UpdatedAt.Format(timeLayout))
	if d.ErrorMessage != nil {
		fmt.Fprintf(a.out, "error: %s\n", *d.ErrorMessage)
	}
}

// Doc handles "doc <id>".
func (a *App) Doc(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("doc <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	d, err := a.client.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	a.printDocument(d)
	return nil
}

// Status handles "status <id> <status> [message]". The message is the rest
// of the line and is required by the server for "failed".
func (a *App) Status(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("status <id> <pending|processing|complete|failed> [message]")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	req := &api.UpdateDocumentRequest{ID: id, Status: &args[1]}
	if len(args) > 2 {
		msg := strings.Join(args[2:], " ")
		req.ErrorMessage = &msg
	}

	d, err := a.client.UpdateDocument(ctx, req)
	if err != nil {
		return err
	}
	a.printDocument(d)
	return nil
}

// Rename handles "rename <id> <filename>".
func (a *App) Rename(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("rename <id> <filename>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	d, err := a.client.UpdateDocument(ctx, &api.UpdateDocumentRequest{ID: id, Filename: &args[1]})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Document %d renamed to %s\n", d.ID, d.Filename)
	return nil
}

// Remove handles "rm <id>".
func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("rm <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := a.client.DeleteDocument(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Document %d deleted\n", id)
	return nil
}

// Download handles "download <id>". The file lands in the configured
// download directory without overwriting existing files.
func (a *App) Download(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("download <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	d, err := a.client.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	url, err := a.client.DownloadURL(ctx, id)
	if err != nil {
		return err
	}

	dir, err := filex.EnsureDir(a.config.DownloadDir)
	if err != nil {
		return err
	}
	path, err := filex.UniquePath(dir, d.Filename)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}

	n, err := downloadFn(ctx, url, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return err
	}

	fmt.Fprintf(a.out, "Saved %s (%d bytes)\n", path, n)
	return nil
}
