package grpc

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/sergiomillane/motor-decisiones/internal/application/usecase"
	"github.com/sergiomillane/motor-decisiones/internal/domain/model"
	"github.com/sergiomillane/motor-decisiones/internal/domain/port"
	"github.com/sergiomillane/motor-decisiones/internal/domain/service"
	"github.com/sergiomillane/motor-decisiones/internal/domain/valueobject"
	"github.com/sergiomillane/motor-decisiones/pkg/events"
)

// --- Mock implementations ---

type mockProvider struct {
	snapshot    *model.ReferenceSnapshot
	snapshotErr error
	refreshErr  error
}

func (m *mockProvider) Initialize(_ context.Context) error { return nil }
func (m *mockProvider) Refresh(_ context.Context) error    { return m.refreshErr }
func (m *mockProvider) Ready() bool                        { return m.snapshot != nil }

func (m *mockProvider) Snapshot(_ context.Context) (*model.ReferenceSnapshot, error) {
	if m.snapshotErr != nil {
		return nil, m.snapshotErr
	}
	return m.snapshot, nil
}

type mockPublisher struct {
	published []events.DomainEvent
}

func (m *mockPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	m.published = append(m.published, evts...)
	return nil
}

var _ port.ReferenceDataProvider = (*mockProvider)(nil)

// --- Helpers ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testSnapshot() *model.ReferenceSnapshot {
	return model.NewReferenceSnapshot(
		[]model.CreditRecord{
			{ClientID: valueobject.NewClientID(53535), Folio: "F-001", Source: model.SourceCredit},
			{ClientID: valueobject.NewClientID(777), Folio: "F-002", Source: model.SourceOrigination},
		},
		map[int64]decimal.Decimal{777: decimal.NewFromInt(2000)},
		map[int64]string{777: "EXCELENTE"},
		map[int64]bool{},
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	)
}

func buildTestHandler(provider port.ReferenceDataProvider, publisher port.EventPublisher) *CreditDecisionHandler {
	logger := testLogger()
	return NewCreditDecisionHandler(
		usecase.NewEvaluateExistingClient(provider, publisher, nil,
			service.NewExistingClientPipeline(service.VariantA, service.NullPolicyCoerce), logger),
		usecase.NewEvaluateNewApplicant(publisher, nil, service.NewNewClientPipeline(), logger),
		usecase.NewRefreshReferenceData(provider),
		logger,
	)
}

// startServer serves handler over an in-memory listener and returns a client
// connection that speaks the JSON codec.
func startServer(t *testing.T, handler CreditDecisionServiceServer) (*Server, *grpclib.ClientConn) {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := NewServer(handler, "bufnet", testLogger(), ServerOptions{})
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpclib.NewClient("passthrough:///bufnet",
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpclib.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return srv, conn
}

func invoke(ctx context.Context, conn *grpclib.ClientConn, method string, req, reply interface{}) error {
	return conn.Invoke(ctx, "/"+CreditDecisionServiceName+"/"+method, req, reply,
		grpclib.CallContentSubtype("json"))
}

func int32Ptr(v int32) *int32 { return &v }

// --- Tests ---

func TestEvaluateExistingClient(t *testing.T) {
	publisher := &mockPublisher{}
	_, conn := startServer(t, buildTestHandler(&mockProvider{snapshot: testSnapshot()}, publisher))
	ctx := context.Background()

	t.Run("accepted over the wire", func(t *testing.T) {
		var reply EvaluationReply
		err := invoke(ctx, conn, "EvaluateExistingClient", &EvaluateExistingClientRequest{
			ClientID:            "53535",
			BureauScore:         int32Ptr(0),
			NoHitScore:          int32Ptr(605),
			ProposedInstallment: "1500",
		}, &reply)
		require.NoError(t, err)
		require.NotNil(t, reply.Evaluation)

		assert.Equal(t, "ACCEPTED", reply.Evaluation.Decision)
		assert.Equal(t, "Aceptado", reply.Evaluation.DecisionLabel)
		assert.Equal(t, int32(30), reply.Evaluation.Total)
		assert.Equal(t, "NO_HIT", reply.Evaluation.BureauBranch)
		assert.Len(t, reply.Evaluation.Partials, 4)
		assert.NotEmpty(t, reply.Evaluation.ID)
	})

	tests := []struct {
		name string
		req  *EvaluateExistingClientRequest
		code codes.Code
	}{
		{
			name: "unknown client is not found",
			req:  &EvaluateExistingClientRequest{ClientID: "123", BureauScore: int32Ptr(650)},
			code: codes.NotFound,
		},
		{
			name: "both scores set is invalid",
			req:  &EvaluateExistingClientRequest{ClientID: "777", BureauScore: int32Ptr(650), NoHitScore: int32Ptr(620)},
			code: codes.InvalidArgument,
		},
		{
			name: "malformed installment",
			req:  &EvaluateExistingClientRequest{ClientID: "777", ProposedInstallment: "mil"},
			code: codes.InvalidArgument,
		},
		{
			name: "negative installment",
			req:  &EvaluateExistingClientRequest{ClientID: "777", ProposedInstallment: "-5"},
			code: codes.InvalidArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reply EvaluationReply
			err := invoke(ctx, conn, "EvaluateExistingClient", tt.req, &reply)
			require.Error(t, err)
			assert.Equal(t, tt.code, status.Code(err))
		})
	}
}

func TestEvaluateExistingClient_NotReady(t *testing.T) {
	_, conn := startServer(t, buildTestHandler(&mockProvider{snapshotErr: port.ErrReferenceDataNotReady}, nil))

	var reply EvaluationReply
	err := invoke(context.Background(), conn, "EvaluateExistingClient",
		&EvaluateExistingClientRequest{ClientID: "53535"}, &reply)
	require.Error(t, err)
	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func TestEvaluateNewApplicant(t *testing.T) {
	publisher := &mockPublisher{}
	_, conn := startServer(t, buildTestHandler(&mockProvider{}, publisher))
	ctx := context.Background()

	t.Run("form defaults", func(t *testing.T) {
		var reply EvaluationReply
		err := invoke(ctx, conn, "EvaluateNewApplicant", &EvaluateNewApplicantRequest{
			ClientID:            "53535",
			BureauScore:         530,
			Age:                 26,
			Housing:             "RENTADA",
			Dependents:          4,
			EstimatedIncome:     "9000",
			ProposedInstallment: "1000",
		}, &reply)
		require.NoError(t, err)

		assert.Equal(t, "REJECTED", reply.Evaluation.Decision)
		assert.Equal(t, int32(50), reply.Evaluation.Total)
		assert.Equal(t, model.PipelineNewApplicant, reply.Evaluation.Pipeline)
		assert.Len(t, publisher.published, 1)
	})

	t.Run("zero dependents", func(t *testing.T) {
		var reply EvaluationReply
		err := invoke(ctx, conn, "EvaluateNewApplicant", &EvaluateNewApplicantRequest{
			Housing:    "PROPIA",
			Dependents: 0,
		}, &reply)
		require.Error(t, err)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}

func TestRefreshReferenceData(t *testing.T) {
	t.Run("reports sizes", func(t *testing.T) {
		_, conn := startServer(t, buildTestHandler(&mockProvider{snapshot: testSnapshot()}, nil))

		var reply RefreshReferenceDataReply
		require.NoError(t, invoke(context.Background(), conn, "RefreshReferenceData", &RefreshReferenceDataRequest{}, &reply))
		assert.Equal(t, int32(2), reply.HistoryRows)
		assert.Equal(t, int32(1), reply.Installments)
		assert.Equal(t, "2024-06-01T00:00:00Z", reply.LoadedAt)
	})

	t.Run("source failure is internal", func(t *testing.T) {
		provider := &mockProvider{refreshErr: errors.New("warehouse unreachable")}
		_, conn := startServer(t, buildTestHandler(provider, nil))

		var reply RefreshReferenceDataReply
		err := invoke(context.Background(), conn, "RefreshReferenceData", &RefreshReferenceDataRequest{}, &reply)
		require.Error(t, err)
		assert.Equal(t, codes.Internal, status.Code(err))
		assert.NotContains(t, err.Error(), "warehouse")
	})
}

func TestServer_HealthStatus(t *testing.T) {
	srv, conn := startServer(t, buildTestHandler(&mockProvider{}, nil))
	client := healthpb.NewHealthClient(conn)
	ctx := context.Background()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: CreditDecisionServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	srv.SetServing(true)
	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: CreditDecisionServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

type panickingHandler struct {
	UnimplementedCreditDecisionServiceServer
}

func (panickingHandler) RefreshReferenceData(context.Context, *RefreshReferenceDataRequest) (*RefreshReferenceDataReply, error) {
	panic("boom")
}

func TestServer_RecoversPanics(t *testing.T) {
	_, conn := startServer(t, panickingHandler{})

	var reply RefreshReferenceDataReply
	err := invoke(context.Background(), conn, "RefreshReferenceData", &RefreshReferenceDataRequest{}, &reply)
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
}
