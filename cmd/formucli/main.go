// formucli, formu.link API'si üzerinde çalışan komut satırı form aracıdır.
// Sunucu arayüzü olmadan form oluşturma, sıralama, taslak ve sürüm
// işlemlerini yürütür; edit komutu otomatik kayıt denetleyicisini kullanır.
//
// Kullanım:
//
//	formucli -base http://localhost:3000 -email admin@formu.link -password admin <komut> [bayraklar]
//
// Komutlar: create, get, reorder, draft, drafts, version, versions,
// publish, rollback, delete, edit
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"formu.link/pkg/autosave"
	"formu.link/pkg/fieldkit"
	"formu.link/pkg/formclient"

	"go.uber.org/zap"
)

func main() {
	base := flag.String("base", "http://localhost:3000", "API taban URL'si")
	email := flag.String("email", "", "Giriş e-postası")
	password := flag.String("password", "", "Giriş şifresi")
	token := flag.String("token", "", "Hazır bearer token (email/şifre yerine)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "kullanım: formucli [bayraklar] <komut>")
		os.Exit(2)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	bearer := *token
	if bearer == "" {
		var err error
		bearer, err = login(*base, *email, *password)
		if err != nil {
			logger.Fatal("giriş başarısız", zap.Error(err))
		}
	}

	client := formclient.New(*base, bearer, nil)
	ctx := context.Background()

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "create":
		err = runCreate(ctx, client, flag.Args()[1:])
	case "get":
		err = runGet(ctx, client, flag.Args()[1:])
	case "reorder":
		err = runReorder(ctx, client, flag.Args()[1:])
	case "draft":
		err = runDraft(ctx, client, logger, flag.Args()[1:])
	case "drafts":
		err = runDrafts(ctx, client, flag.Args()[1:])
	case "version":
		err = runVersion(ctx, client, flag.Args()[1:])
	case "versions":
		err = runVersions(ctx, client, flag.Args()[1:])
	case "publish":
		err = runPublishRollback(ctx, client, flag.Args()[1:], true)
	case "rollback":
		err = runPublishRollback(ctx, client, flag.Args()[1:], false)
	case "delete":
		err = runDelete(ctx, client, flag.Args()[1:])
	case "edit":
		err = runEdit(ctx, client, logger, flag.Args()[1:])
	default:
		err = fmt.Errorf("bilinmeyen komut: %s", cmd)
	}
	if err != nil {
		logger.Fatal("komut başarısız", zap.Error(err))
	}
}

// login e-posta/şifre ile token alır.
func login(base, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("token verilmediyse -email ve -password zorunludur")
	}
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := http.Post(strings.TrimRight(base, "/")+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("giriş reddedildi (status %d)", resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// runCreate -title ve virgülle ayrılmış -fields tip listesinden form oluşturur.
// Alan etiketleri/isimleri tip varsayılanlarından türetilir.
func runCreate(ctx context.Context, client *formclient.Client, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	title := fs.String("title", "", "Form başlığı")
	fieldTypes := fs.String("fields", "", "Virgülle ayrılmış alan tipleri (örn. text,email,checkboxes)")
	_ = fs.Parse(args)

	if *title == "" {
		return fmt.Errorf("-title zorunludur")
	}

	unique, err := client.CheckTitle(ctx, *title, 0)
	if err != nil {
		return err
	}
	if !unique {
		return fmt.Errorf("başlık zaten kullanımda: %s", *title)
	}

	payload := formclient.FormPayload{Title: *title}
	for _, raw := range strings.Split(*fieldTypes, ",") {
		t := fieldkit.FieldType(strings.TrimSpace(raw))
		if t == "" {
			continue
		}
		defaults := fieldkit.DefaultsFor(t)
		payload.Fields = append(payload.Fields, formclient.FieldPayload{
			ID:          fieldkit.GenerateFieldID(),
			Type:        string(t),
			Label:       defaults.Label,
			Name:        fieldkit.ToSafeIdentifier(defaults.Label),
			Options:     defaults.Options,
			Placeholder: defaults.Placeholder,
		})
	}

	form, err := client.SaveForm(ctx, payload)
	if err != nil {
		return err
	}
	return printJSON(form)
}

func runGet(ctx context.Context, client *formclient.Client, args []string) error {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	id := fs.Uint("id", 0, "Form ID")
	_ = fs.Parse(args)

	form, err := client.GetForm(ctx, uint(*id))
	if err != nil {
		return err
	}
	return printJSON(form)
}

func runReorder(ctx context.Context, client *formclient.Client, args []string) error {
	fs := flag.NewFlagSet("reorder", flag.ExitOnError)
	id := fs.Uint("id", 0, "Form ID")
	from := fs.Int("from", -1, "Taşınan alanın mevcut indeksi")
	to := fs.Int("to", -1, "Hedef indeks")
	_ = fs.Parse(args)

	form, err := client.ReorderFields(ctx, uint(*id), *from, *to)
	if err != nil {
		return err
	}
	return printJSON(form)
}

// runDraft formun güncel halini manuel taslak olarak kaydeder.
func runDraft(ctx context.Context, client *formclient.Client, logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("draft", flag.ExitOnError)
	id := fs.Uint("id", 0, "Form ID")
	title := fs.String("title", "", "Taslak başlığı (boşsa form başlığı)")
	_ = fs.Parse(args)

	form, err := client.GetForm(ctx, uint(*id))
	if err != nil {
		return err
	}
	draftTitle := *title
	if draftTitle == "" {
		draftTitle = form.Title
	}

	ctrl := autosave.NewController(autosave.Options{
		Store: client,
		ReadState: func() autosave.State {
			return autosave.State{
				FormID:     &form.ID,
				Title:      draftTitle,
				Fields:     form.Fields,
				CategoryID: form.CategoryID,
			}
		},
		Logger: logger,
	})
	defer ctrl.Close()

	draft, err := ctrl.SaveDraftNow(ctx)
	if err != nil {
		return err
	}
	return printJSON(draft)
}

func runDrafts(ctx context.Context, client *formclient.Client, args []string) error {
	fs := flag.NewFlagSet("drafts", flag.ExitOnError)
	id := fs.Uint("id", 0, "Form ID")
	_ = fs.Parse(args)

	drafts, err := client.ListDrafts(ctx, uint(*id))
	if err != nil {
		return err
	}
	return printJSON(drafts)
}

func runVersion(ctx context.Context, client *formclient.Client, args []string) error {
	fs := flag.NewFlagSet("version", flag.ExitOnError)
	id := fs.Uint("id", 0, "Form ID")
	desc := fs.String("desc", "", "Değişiklik açıklaması")
	_ = fs.Parse(args)

	version, err := client.CreateVersion(ctx, uint(*id), *desc)
	if err != nil {
		return err
	}
	return printJSON(version)
}

func runVersions(ctx context.Context, client *formclient.Client, args []string) error {
	fs := flag.NewFlagSet("versions", flag.ExitOnError)
	id := fs.Uint("id", 0, "Form ID")
	_ = fs.Parse(args)

	versions, err := client.ListVersions(ctx, uint(*id))
	if err != nil {
		return err
	}
	return printJSON(versions)
}

func runPublishRollback(ctx context.Context, client *formclient.Client, args []string, publish bool) error {
	name := "rollback"
	if publish {
		name = "publish"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	formID := fs.Uint("form", 0, "Form ID")
	versionID := fs.Uint("version", 0, "Sürüm ID")
	_ = fs.Parse(args)

	var (
		version *formclient.Version
		err     error
	)
	if publish {
		version, err = client.PublishVersion(ctx, uint(*formID), uint(*versionID))
	} else {
		version, err = client.RollbackVersion(ctx, uint(*formID), uint(*versionID))
	}
	if err != nil {
		return err
	}
	return printJSON(version)
}

func runDelete(ctx context.Context, client *formclient.Client, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Uint("id", 0, "Form ID")
	_ = fs.Parse(args)
	if err := client.DeleteForm(ctx, uint(*id)); err != nil {
		return err
	}
	fmt.Println("silindi")
	return nil
}

// consoleNotifier otomatik kayıt bildirimlerini stderr'e yazar.
type consoleNotifier struct{}

func (consoleNotifier) Success(msg string) { fmt.Fprintln(os.Stderr, "✓ "+msg) }
func (consoleNotifier) Error(msg string)   { fmt.Fprintln(os.Stderr, "✗ "+msg) }

// runEdit stdin'den satır satır başlık düzenlemesi alır; her satır bir
// düzenleme sayılır ve otomatik kayıt denetleyicisi taslakları arka planda
// kaydeder. EOF (Ctrl-D) oturumu bitirir.
func runEdit(ctx context.Context, client *formclient.Client, logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	id := fs.Uint("id", 0, "Form ID")
	_ = fs.Parse(args)

	form, err := client.GetForm(ctx, uint(*id))
	if err != nil {
		return err
	}

	var mu sync.Mutex
	title := form.Title

	ctrl := autosave.NewController(autosave.Options{
		Store: client,
		ReadState: func() autosave.State {
			mu.Lock()
			defer mu.Unlock()
			return autosave.State{
				FormID:     &form.ID,
				Title:      title,
				Fields:     form.Fields,
				CategoryID: form.CategoryID,
			}
		},
		Notifier: consoleNotifier{},
		Logger:   logger,
	})
	ctrl.Start()
	defer ctrl.Close()

	fmt.Printf("Düzenleme oturumu: %q — yeni başlıkları satır satır girin, Ctrl-D ile bitirin.\n", form.Title)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		mu.Lock()
		title = line
		mu.Unlock()
		ctrl.Edit()
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	// Çıkarken bekleyen değişiklikler manuel taslak olarak yazılır.
	if _, err := ctrl.SaveDraftNow(ctx); err != nil && err != autosave.ErrSaveInFlight {
		return err
	}
	return nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
