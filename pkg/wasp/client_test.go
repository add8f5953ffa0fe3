package wasp_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlepoker/waspclient/pkg/codec"
	"github.com/doodlepoker/waspclient/pkg/wasp"
)

var testChain = codec.ChainID{0x02, 0xaa, 0xbb}

func newTestServer(t *testing.T, handler http.HandlerFunc) *wasp.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return wasp.NewClient(server.URL)
}

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func TestNewClient_Scheme(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "http://localhost:9090", wasp.NewClient("localhost:9090/").BaseURL())
	assert.Equal(t, "https://node.example", wasp.NewClient("https://node.example").BaseURL())
}

func TestClient_CallView(t *testing.T) {
	t.Parallel()

	args := codec.NewArguments()
	args.SetUint32("tableNumber", 4)
	wantArgs, err := args.Encode()
	require.NoError(t, err)

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chain/"+testChain.String()+"/contract/b40a047a/callview/getTableInfo", r.URL.Path)

		var body struct{ Request string }
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		got, err := base64.StdEncoding.DecodeString(body.Request)
		require.NoError(t, err)
		assert.Equal(t, wantArgs, got)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"Items":[
			{"Key":"`+b64("size")+`","Value":"`+base64.StdEncoding.EncodeToString([]byte{6, 0})+`"},
			{"Key":"`+b64("handInProgress")+`","Value":"`+base64.StdEncoding.EncodeToString([]byte{1})+`"}
		]}`)
	})

	res, err := client.CallView(context.Background(), testChain, codec.Hname(0xb40a047a), "getTableInfo", args)
	require.NoError(t, err)

	size, err := res.GetUint16("size")
	require.NoError(t, err)
	assert.Equal(t, uint16(6), size)

	inProgress, err := res.GetBool("handInProgress")
	require.NoError(t, err)
	assert.True(t, inProgress)
}

func TestClient_CallViewValidatesArguments(t *testing.T) {
	t.Parallel()

	called := false
	client := newTestServer(t, func(http.ResponseWriter, *http.Request) { called = true })

	args := codec.NewArguments()
	args.Require("tableNumber")
	_, err := client.CallView(context.Background(), testChain, 1, "getTableInfo", args)
	assert.ErrorIs(t, err, codec.ErrMissingArgument)
	assert.False(t, called)
}

func TestClient_PostAndExecute(t *testing.T) {
	t.Parallel()

	reqID := codec.NewRequestID(codec.HashData([]byte("signed")), 0)
	var paths []string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		if strings.HasPrefix(r.URL.Path, "/request/") {
			var body struct{ Request string }
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, b64("signed"), body.Request)
		}
		w.WriteHeader(http.StatusOK)
	})

	ctx := context.Background()
	require.NoError(t, client.PostOffLedgerRequest(ctx, testChain, []byte("signed")))
	require.NoError(t, client.ExecuteRequest(ctx, testChain, reqID))
	require.NoError(t, client.WaitRequest(ctx, testChain, reqID))

	assert.Equal(t, []string{
		"POST /request/" + testChain.String(),
		"POST /chain/" + testChain.String() + "/request/" + reqID.String() + "/execute",
		"GET /chain/" + testChain.String() + "/request/" + reqID.String() + "/wait",
	}, paths)
}

func TestClient_StatusError(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "request rejected", http.StatusBadRequest)
	})

	err := client.PostOffLedgerRequest(context.Background(), testChain, []byte{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, wasp.ErrTransport)

	var statusErr *wasp.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.Code)
	assert.Equal(t, "request rejected", statusErr.Body)
}

func TestClient_NetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	client := wasp.NewClient(server.URL)
	server.Close()

	err := client.WaitRequest(context.Background(), testChain, codec.RequestID{})
	assert.ErrorIs(t, err, wasp.ErrTransport)

	var statusErr *wasp.StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestClient_DiscoverChainID(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/adm/chainrecords", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]wasp.ChainRecord{
			{ChainID: testChain.String(), Active: true},
			{ChainID: codec.ChainID{9}.String(), Active: false},
		})
	})

	chainID, err := client.DiscoverChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testChain, chainID)

	empty := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "[]")
	})
	_, err = empty.DiscoverChainID(context.Background())
	assert.ErrorIs(t, err, wasp.ErrNoChain)
}

func TestClient_ContextCancelled(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := client.WaitRequest(ctx, testChain, codec.RequestID{})
	assert.ErrorIs(t, err, context.Canceled)
}
