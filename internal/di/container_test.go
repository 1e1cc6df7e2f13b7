package di_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-sitecms/internal/ai"
	"github.com/goliatone/go-sitecms/internal/contact"
	"github.com/goliatone/go-sitecms/internal/di"
	"github.com/goliatone/go-sitecms/internal/notify"
	"github.com/goliatone/go-sitecms/internal/posts"
	"github.com/goliatone/go-sitecms/internal/runtimeconfig"
	"github.com/goliatone/go-sitecms/internal/site"
	"github.com/goliatone/go-sitecms/pkg/testsupport"
)

type stubCompleter struct{}

func (stubCompleter) Complete(context.Context, ai.CompletionRequest) (string, error) {
	return "ok", nil
}

func (stubCompleter) GenerateImage(context.Context, ai.ImageRequest) (*ai.ImageResult, error) {
	return &ai.ImageResult{URL: "https://img.test/x.png"}, nil
}

func TestNewContainerDefaultsToMemory(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.PostService() == nil || container.SiteService() == nil {
		t.Fatal("expected post and site services")
	}
	if container.MarkdownService() == nil {
		t.Fatal("expected markdown service with the default feature set")
	}
	if container.Generator() != nil || container.Pipeline() != nil {
		t.Fatal("expected ai to stay off by default")
	}

	post, err := container.PostService().Create(context.Background(), posts.CreatePostRequest{Title: "Hello"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.Slug != "hello" {
		t.Fatalf("unexpected slug %q", post.Slug)
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Automation = true
	if _, err := di.NewContainer(cfg); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestNewContainerWiresAIAndAutomation(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.AI = true
	cfg.Features.Automation = true

	container, err := di.NewContainer(cfg, di.WithCompleter(stubCompleter{}))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.Generator() == nil {
		t.Fatal("expected generator with an injected completer")
	}
	if container.Pipeline() == nil {
		t.Fatal("expected automation pipeline")
	}

	result, err := container.Pipeline().Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.Skipped {
		t.Fatalf("expected a skipped run while the profile disables automation, got %+v", result)
	}
}

type recordingMailer struct {
	sent []notify.ContactSubmission
}

func (m *recordingMailer) ContactSubmitted(_ context.Context, msg notify.ContactSubmission) error {
	m.sent = append(m.sent, msg)
	return nil
}

type recordingAppender struct {
	sheets []string
}

func (a *recordingAppender) AppendRow(_ context.Context, sheetID, _ string, _ []any) error {
	a.sheets = append(a.sheets, sheetID)
	return nil
}

func TestNewContainerWiresContactService(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Contact.SheetID = "default-sheet"
	mailer := &recordingMailer{}
	appender := &recordingAppender{}

	container, err := di.NewContainer(cfg, di.WithContactNotifier(mailer), di.WithSheetAppender(appender))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, err := container.SiteService().SaveProfile(context.Background(), site.Profile{ContactEmail: "owner@acme.test"}); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	result, err := container.ContactService().Submit(context.Background(), &contact.Submission{
		Fields: []contact.Field{{Key: "name", Value: "Ada"}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Emailed || !result.Appended {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(mailer.sent) != 1 || mailer.sent[0].To != "owner@acme.test" {
		t.Fatalf("unexpected emails %+v", mailer.sent)
	}
	if len(appender.sheets) != 1 || appender.sheets[0] != "default-sheet" {
		t.Fatalf("unexpected appends %+v", appender.sheets)
	}
}

func TestNewContainerContactWithoutPostmarkSkipsEmail(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	result, err := container.ContactService().Submit(context.Background(), &contact.Submission{
		Fields:    []contact.Field{{Key: "name", Value: "Ada"}},
		Recipient: "owner@acme.test",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Emailed || result.EmailFailed || result.Appended {
		t.Fatalf("expected nothing delivered, got %+v", result)
	}
}

func TestNewContainerUsesBunRepositories(t *testing.T) {
	ctx := context.Background()
	bunDB := testsupport.NewBunDB(t, (*posts.Post)(nil), (*site.SettingsRecord)(nil), (*site.Offering)(nil))

	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithBunDB(bunDB))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.BunDB() != bunDB {
		t.Fatal("expected container to keep the database")
	}

	if _, err := container.SiteService().SaveOffering(ctx, site.SaveOfferingRequest{Title: "Boiler Repair Di"}); err != nil {
		t.Fatalf("save offering: %v", err)
	}
	var count int
	count, err = bunDB.NewSelect().Model((*site.Offering)(nil)).Where("slug = ?", "boiler-repair-di").Count(ctx)
	if err != nil {
		t.Fatalf("count offerings: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected offering row in sqlite, got %d", count)
	}
}

