package payment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"
	paymentPort "github.com/MurderPatro1/vk-course-bot/internal/ports/payment"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// paymentRepoStub леджер в памяти с тем же CAS-поведением, что у боевого репозитория
type paymentRepoStub struct {
	mu       sync.Mutex
	payments map[string]*domain.Payment
	nextID   int64
}

func newPaymentRepoStub() *paymentRepoStub {
	return &paymentRepoStub{payments: make(map[string]*domain.Payment)}
}

func (s *paymentRepoStub) Create(_ context.Context, payment *domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[payment.Label]; ok {
		return fmt.Errorf("duplicate label: %s", payment.Label)
	}
	s.nextID++
	payment.ID = s.nextID
	copied := *payment
	s.payments[payment.Label] = &copied
	return nil
}

func (s *paymentRepoStub) GetByLabel(_ context.Context, label string) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payment, ok := s.payments[label]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	copied := *payment
	return &copied, nil
}

func (s *paymentRepoStub) ClaimPaid(_ context.Context, label string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payment, ok := s.payments[label]
	if !ok || payment.Status != domain.PaymentStatusPending {
		return false, nil
	}
	now := time.Now()
	payment.Status = domain.PaymentStatusPaid
	payment.PaidAt = &now
	return true, nil
}

func (s *paymentRepoStub) ExpirePending(_ context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, payment := range s.payments {
		if payment.Status == domain.PaymentStatusPending && payment.CreatedAt.Before(olderThan) {
			payment.Status = domain.PaymentStatusExpired
			count++
		}
	}
	return count, nil
}

type courseRepoStub struct {
	courses map[int64]*domain.Course
}

func (s *courseRepoStub) GetByID(_ context.Context, id int64) (*domain.Course, error) {
	course, ok := s.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	copied := *course
	return &copied, nil
}

func (s *courseRepoStub) List(_ context.Context) ([]domain.Course, error) {
	var out []domain.Course
	for _, course := range s.courses {
		out = append(out, *course)
	}
	return out, nil
}

func (s *courseRepoStub) UpdatePrice(_ context.Context, id int64, price int64) error {
	course, ok := s.courses[id]
	if !ok {
		return domain.ErrCourseNotFound
	}
	course.Price = price
	return nil
}

type providerStub struct {
	unavailable bool
	requests    []paymentPort.PaymentURLRequest
}

func (s *providerStub) BuildPaymentURL(req paymentPort.PaymentURLRequest) (string, error) {
	if s.unavailable {
		return "", domain.ErrProviderUnavailable
	}
	s.requests = append(s.requests, req)
	return "https://yoomoney.ru/quickpay/confirm.xml?label=" + req.Label, nil
}

type sentMessage struct {
	peerID     int64
	text       string
	attachment string
}

type vkServiceStub struct {
	mu         sync.Mutex
	failUpload bool
	messages   []sentMessage
	uploads    []string
}

func (s *vkServiceStub) SendMessage(_ context.Context, peerID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, sentMessage{peerID: peerID, text: text})
	return nil
}

func (s *vkServiceStub) SendMessageWithKeyboard(_ context.Context, peerID int64, text string, _ map[string]interface{}) error {
	return s.SendMessage(nil, peerID, text)
}

func (s *vkServiceStub) SendMessageWithAttachment(_ context.Context, peerID int64, text string, attachment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, sentMessage{peerID: peerID, text: text, attachment: attachment})
	return nil
}

func (s *vkServiceStub) UploadDocument(_ context.Context, peerID int64, filename string, _ []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpload {
		return "", errors.New("upload failed")
	}
	s.uploads = append(s.uploads, filename)
	return fmt.Sprintf("doc%d_101", peerID), nil
}

func (s *vkServiceStub) attachmentsSent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int
	for _, msg := range s.messages {
		if msg.attachment != "" {
			count++
		}
	}
	return count
}

type s3Stub struct {
	files   map[string][]byte
	failGet bool
}

func (s *s3Stub) GetFile(_ context.Context, path string) ([]byte, error) {
	if s.failGet {
		return nil, errors.New("storage unavailable")
	}
	data, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return data, nil
}

type alerterStub struct {
	mu     sync.Mutex
	alerts []string
}

func (s *alerterStub) SendAlert(_ context.Context, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, message)
	return nil
}

type producerStub struct {
	mu     sync.Mutex
	events []string
}

func (s *producerStub) Send(_ context.Context, _ string, _ []byte) error { return nil }

func (s *producerStub) SendPaymentEvent(_ context.Context, event string, _ string, _ map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *producerStub) Close() error { return nil }

type fixture struct {
	service  *Service
	payments *paymentRepoStub
	courses  *courseRepoStub
	provider *providerStub
	vk       *vkServiceStub
	s3       *s3Stub
	alerter  *alerterStub
	producer *producerStub
}

func newFixture() *fixture {
	payments := newPaymentRepoStub()
	courses := &courseRepoStub{courses: map[int64]*domain.Course{
		1: {
			ID:          1,
			Title:       "Курс по инвестициям",
			Description: "Основы инвестирования",
			Price:       1990,
			FilePath:    "courses/invest.pdf",
		},
	}}
	provider := &providerStub{}
	vk := &vkServiceStub{}
	s3 := &s3Stub{files: map[string][]byte{
		"courses/invest.pdf": []byte("pdf-content"),
	}}
	alerter := &alerterStub{}
	producer := &producerStub{}

	service := New(payments, courses, provider, vk, s3, alerter, producer, testLogger())

	return &fixture{
		service:  service,
		payments: payments,
		courses:  courses,
		provider: provider,
		vk:       vk,
		s3:       s3,
		alerter:  alerter,
		producer: producer,
	}
}

var labelPattern = regexp.MustCompile(`^(\d+):(\d+):([0-9a-f]{32})$`)

func TestCreatePayment(t *testing.T) {
	f := newFixture()

	payment, paymentURL, err := f.service.CreatePayment(context.Background(), 52001, 1)
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	matches := labelPattern.FindStringSubmatch(payment.Label)
	if matches == nil {
		t.Fatalf("label %q does not match expected format", payment.Label)
	}
	if matches[1] != "52001" || matches[2] != "1" {
		t.Errorf("label %q does not encode buyer and course", payment.Label)
	}

	if payment.Status != domain.PaymentStatusPending {
		t.Errorf("payment status = %s, want pending", payment.Status)
	}
	if payment.Amount != 1990 {
		t.Errorf("payment amount = %d, want 1990", payment.Amount)
	}
	if !strings.Contains(paymentURL, payment.Label) {
		t.Errorf("payment url %q does not carry the label", paymentURL)
	}

	// Запись появилась в леджере до выдачи ссылки
	stored, err := f.payments.GetByLabel(context.Background(), payment.Label)
	if err != nil {
		t.Fatalf("payment was not stored: %v", err)
	}
	if stored.Status != domain.PaymentStatusPending {
		t.Errorf("stored status = %s, want pending", stored.Status)
	}
}

func TestCreatePayment_UniqueLabels(t *testing.T) {
	f := newFixture()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		payment, _, err := f.service.CreatePayment(context.Background(), 52001, 1)
		if err != nil {
			t.Fatalf("CreatePayment: %v", err)
		}
		if seen[payment.Label] {
			t.Fatalf("duplicate label generated: %s", payment.Label)
		}
		seen[payment.Label] = true
	}
}

func TestCreatePayment_PriceReadOnce(t *testing.T) {
	f := newFixture()

	payment, _, err := f.service.CreatePayment(context.Background(), 52001, 1)
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	// Цена меняется после выдачи ссылки - платёж остаётся со старой
	if err := f.courses.UpdatePrice(context.Background(), 1, 2990); err != nil {
		t.Fatalf("UpdatePrice: %v", err)
	}

	stored, err := f.payments.GetByLabel(context.Background(), payment.Label)
	if err != nil {
		t.Fatalf("GetByLabel: %v", err)
	}
	if stored.Amount != 1990 {
		t.Errorf("stored amount = %d, want 1990", stored.Amount)
	}
}

func TestCreatePayment_ProviderUnavailable(t *testing.T) {
	f := newFixture()
	f.provider.unavailable = true

	_, _, err := f.service.CreatePayment(context.Background(), 52001, 1)
	if !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}

	// Запись в леджере не создаётся: либо всё, либо ничего
	if len(f.payments.payments) != 0 {
		t.Errorf("ledger has %d records, want 0", len(f.payments.payments))
	}
}

func TestCreatePayment_UnknownCourse(t *testing.T) {
	f := newFixture()

	_, _, err := f.service.CreatePayment(context.Background(), 52001, 777)
	if !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestHandleConfirmedPayment_Fulfilled(t *testing.T) {
	f := newFixture()

	payment, _, err := f.service.CreatePayment(context.Background(), 52001, 1)
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	outcome, err := f.service.HandleConfirmedPayment(context.Background(), payment.Label)
	if err != nil {
		t.Fatalf("HandleConfirmedPayment: %v", err)
	}
	if outcome != domain.OutcomeFulfilled {
		t.Fatalf("outcome = %s, want fulfilled", outcome)
	}

	stored, _ := f.payments.GetByLabel(context.Background(), payment.Label)
	if stored.Status != domain.PaymentStatusPaid {
		t.Errorf("stored status = %s, want paid", stored.Status)
	}
	if stored.PaidAt == nil {
		t.Error("paid_at is not set")
	}

	if got := f.vk.attachmentsSent(); got != 1 {
		t.Errorf("attachments sent = %d, want 1", got)
	}
	if len(f.vk.uploads) != 1 || f.vk.uploads[0] != "invest.pdf" {
		t.Errorf("uploads = %v, want [invest.pdf]", f.vk.uploads)
	}
}

func TestHandleConfirmedPayment_DuplicateNotification(t *testing.T) {
	f := newFixture()

	payment, _, err := f.service.CreatePayment(context.Background(), 52001, 1)
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	first, err := f.service.HandleConfirmedPayment(context.Background(), payment.Label)
	if err != nil {
		t.Fatalf("first notification: %v", err)
	}
	second, err := f.service.HandleConfirmedPayment(context.Background(), payment.Label)
	if err != nil {
		t.Fatalf("second notification: %v", err)
	}

	if first != domain.OutcomeFulfilled {
		t.Errorf("first outcome = %s, want fulfilled", first)
	}
	if second != domain.OutcomeAlreadyProcessed {
		t.Errorf("second outcome = %s, want already_processed", second)
	}

	// Курс доставлен ровно один раз
	if got := f.vk.attachmentsSent(); got != 1 {
		t.Errorf("attachments sent = %d, want 1", got)
	}
}

func TestHandleConfirmedPayment_ConcurrentNotifications(t *testing.T) {
	f := newFixture()

	payment, _, err := f.service.CreatePayment(context.Background(), 52001, 1)
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	const workers = 8
	outcomes := make(chan domain.FulfillmentOutcome, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := f.service.HandleConfirmedPayment(context.Background(), payment.Label)
			if err != nil {
				t.Errorf("HandleConfirmedPayment: %v", err)
				return
			}
			outcomes <- outcome
		}()
	}
	wg.Wait()
	close(outcomes)

	var fulfilled int
	for outcome := range outcomes {
		if outcome == domain.OutcomeFulfilled {
			fulfilled++
		}
	}
	if fulfilled != 1 {
		t.Errorf("fulfilled outcomes = %d, want exactly 1", fulfilled)
	}
	if got := f.vk.attachmentsSent(); got != 1 {
		t.Errorf("attachments sent = %d, want 1", got)
	}
}

func TestHandleConfirmedPayment_UnknownLabel(t *testing.T) {
	f := newFixture()

	outcome, err := f.service.HandleConfirmedPayment(context.Background(), "1:1:ffffffffffffffffffffffffffffffff")
	if err != nil {
		t.Fatalf("HandleConfirmedPayment: %v", err)
	}
	if outcome != domain.OutcomeUnknownLabel {
		t.Fatalf("outcome = %s, want unknown_label", outcome)
	}

	// Неизвестная метка не создаёт записей и не шлёт сообщений
	if len(f.payments.payments) != 0 {
		t.Errorf("ledger has %d records, want 0", len(f.payments.payments))
	}
	if len(f.vk.messages) != 0 {
		t.Errorf("messages sent = %d, want 0", len(f.vk.messages))
	}
}

func TestHandleConfirmedPayment_DeliveryFailure(t *testing.T) {
	f := newFixture()
	f.s3.failGet = true

	payment, _, err := f.service.CreatePayment(context.Background(), 52001, 1)
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	outcome, err := f.service.HandleConfirmedPayment(context.Background(), payment.Label)
	if err != nil {
		t.Fatalf("HandleConfirmedPayment: %v", err)
	}
	if outcome != domain.OutcomeDeliveryFailed {
		t.Fatalf("outcome = %s, want delivery_failed", outcome)
	}

	// Статус paid не откатывается при ошибке доставки
	stored, _ := f.payments.GetByLabel(context.Background(), payment.Label)
	if stored.Status != domain.PaymentStatusPaid {
		t.Errorf("stored status = %s, want paid", stored.Status)
	}

	// Покупатель получил фолбэк, оператор - алерт с меткой
	if len(f.vk.messages) != 1 {
		t.Fatalf("messages sent = %d, want 1", len(f.vk.messages))
	}
	if len(f.alerter.alerts) != 1 {
		t.Fatalf("alerts sent = %d, want 1", len(f.alerter.alerts))
	}
	if !strings.Contains(f.alerter.alerts[0], payment.Label) {
		t.Errorf("alert %q does not mention the label", f.alerter.alerts[0])
	}
}

func TestHandleConfirmedPayment_ExpiredLabel(t *testing.T) {
	f := newFixture()

	payment, _, err := f.service.CreatePayment(context.Background(), 52001, 1)
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	f.payments.payments[payment.Label].Status = domain.PaymentStatusExpired

	outcome, err := f.service.HandleConfirmedPayment(context.Background(), payment.Label)
	if err != nil {
		t.Fatalf("HandleConfirmedPayment: %v", err)
	}
	if outcome != domain.OutcomeAlreadyProcessed {
		t.Fatalf("outcome = %s, want already_processed", outcome)
	}

	// Курс не доставляется, но оператор узнаёт о деньгах за протухший платёж
	if got := f.vk.attachmentsSent(); got != 0 {
		t.Errorf("attachments sent = %d, want 0", got)
	}
	if len(f.alerter.alerts) != 1 {
		t.Errorf("alerts sent = %d, want 1", len(f.alerter.alerts))
	}
}

func TestRedeliver(t *testing.T) {
	f := newFixture()

	payment, _, err := f.service.CreatePayment(context.Background(), 52001, 1)
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	// Ресенд до оплаты запрещён
	if err := f.service.Redeliver(context.Background(), payment.Label); err == nil {
		t.Fatal("expected redeliver of pending payment to fail")
	}

	if _, err := f.service.HandleConfirmedPayment(context.Background(), payment.Label); err != nil {
		t.Fatalf("HandleConfirmedPayment: %v", err)
	}

	if err := f.service.Redeliver(context.Background(), payment.Label); err != nil {
		t.Fatalf("Redeliver: %v", err)
	}
	if got := f.vk.attachmentsSent(); got != 2 {
		t.Errorf("attachments sent = %d, want 2", got)
	}
}

func TestPaymentEvents(t *testing.T) {
	f := newFixture()

	payment, _, err := f.service.CreatePayment(context.Background(), 52001, 1)
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	if _, err := f.service.HandleConfirmedPayment(context.Background(), payment.Label); err != nil {
		t.Fatalf("HandleConfirmedPayment: %v", err)
	}

	want := []string{"payment.created", "payment.paid"}
	if len(f.producer.events) != len(want) {
		t.Fatalf("events = %v, want %v", f.producer.events, want)
	}
	for i, event := range want {
		if f.producer.events[i] != event {
			t.Errorf("event[%d] = %s, want %s", i, f.producer.events[i], event)
		}
	}
}
