package gatewaytest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/flashbots/go-utils/httplogger"
	"github.com/go-chi/chi/v5"
	"github.com/ruteri/bzz-gateway-client/digest"
	"github.com/ruteri/bzz-gateway-client/dirs/tarfs"
	"github.com/ruteri/bzz-gateway-client/interfaces"
	"github.com/ruteri/bzz-gateway-client/protocol"
	"go.uber.org/atomic"
)

// DefaultFeedLevel is the epoch level announced for the next feed update.
const DefaultFeedLevel uint8 = 25

type Server struct {
	log      *slog.Logger
	store    *store
	requests atomic.Int64
}

// NewServer returns an empty in-memory gateway.
func NewServer(log *slog.Logger) *Server {
	return &Server{
		log:   log,
		store: newStore(),
	}
}

// Router returns the gateway HTTP handler.
func (srv *Server) Router() http.Handler {
	mux := chi.NewRouter()
	mux.Use(srv.countRequests)
	mux.Use(srv.httpLogger)

	mux.Post("/bzz:/*", srv.handleUpload)
	mux.Delete("/bzz:/*", srv.handleDelete)
	mux.Get("/bzz:/*", srv.handleDownload)
	mux.Get("/bzz-immutable:/*", srv.handleDownload)

	mux.Post("/bzz-raw:/*", srv.handleRawUpload)
	mux.Get("/bzz-raw:/*", srv.handleRawDownload)

	mux.Get("/bzz-list:/*", srv.handleList)
	mux.Get("/bzz-hash:/*", srv.handleHash)

	mux.Get("/bzz-feed:/*", srv.handleFeedGet)
	mux.Post("/bzz-feed:/*", srv.handleFeedPost)
	return mux
}

// Requests returns the number of requests served so far.
func (srv *Server) Requests() int64 {
	return srv.requests.Load()
}

// RegisterDomain makes bzz-hash:/{domain} resolve to hash.
func (srv *Server) RegisterDomain(domain string, hash interfaces.ContentHash) {
	srv.store.putDomain(domain, hash)
}

// HasContent reports whether hash references stored content.
func (srv *Server) HasContent(hash interfaces.ContentHash) bool {
	_, ok := srv.store.blob(hash)
	return ok
}

// TopicFromName returns the feed topic derived from a feed name.
func TopicFromName(name string) string {
	topic := make([]byte, digest.FeedTopicLength)
	copy(topic, name)
	return hexutil.Encode(topic)
}

func (srv *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srv.requests.Inc()
		next.ServeHTTP(w, r)
	})
}

func (srv *Server) httpLogger(next http.Handler) http.Handler {
	return httplogger.LoggingMiddlewareSlog(srv.log, next)
}

// splitAddr splits "hash/path" into its hash and path.
func splitAddr(rest string) (interfaces.ContentHash, string, bool) {
	i := strings.Index(rest, "/")
	if i < 0 {
		return interfaces.ContentHash(rest), "", false
	}
	return interfaces.ContentHash(rest[:i]), rest[i+1:], true
}

func writeText(w http.ResponseWriter, text string) {
	w.Header().Set(interfaces.HeaderContentType, "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set(interfaces.HeaderContentType, "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func (srv *Server) handleRawUpload(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeText(w, srv.store.putBlob(body).String())
}

func (srv *Server) handleRawDownload(w http.ResponseWriter, r *http.Request) {
	data, ok := srv.store.blob(interfaces.ContentHash(chi.URLParam(r, "*")))
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	contentType := r.URL.Query().Get(protocol.ParamContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set(interfaces.HeaderContentType, contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// entriesFromBody decodes an upload body into manifest entries keyed by path.
func (srv *Server) entriesFromBody(r *http.Request, body []byte) (map[string]manifestEntry, error) {
	contentType := r.Header.Get(interfaces.HeaderContentType)
	mediaType, params, _ := mime.ParseMediaType(contentType)

	entries := map[string]manifestEntry{}
	switch mediaType {
	case tarfs.MediaType:
		dir, err := tarfs.ReadTar(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		for p, e := range dir {
			entries[p] = srv.store.newEntry(e.Data, e.ContentType)
		}
	case "multipart/form-data":
		mr := multipart.NewReader(bytes.NewReader(body), params["boundary"])
		for {
			part, err := mr.NextPart()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, err
			}
			data, err := io.ReadAll(part)
			if err != nil {
				return nil, err
			}
			entries[part.FormName()] = srv.store.newEntry(data, part.Header.Get(interfaces.HeaderContentType))
		}
	default:
		entries[""] = srv.store.newEntry(body, contentType)
	}
	return entries, nil
}

func (srv *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entries, err := srv.entriesFromBody(r, body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m := &manifest{Entries: map[string]manifestEntry{}}
	rest := chi.URLParam(r, "*")
	prefix := ""
	if rest != "" && rest != "encrypt" {
		hash, path, _ := splitAddr(rest)
		base, ok := srv.store.manifest(hash)
		if !ok {
			http.Error(w, "manifest not found", http.StatusNotFound)
			return
		}
		m = base.clone()
		prefix = path
	}

	for p, e := range entries {
		m.Entries[prefix+p] = e
	}
	if dp := r.URL.Query().Get(protocol.ParamDefaultPath); dp != "" {
		e, ok := m.Entries[dp]
		if !ok {
			http.Error(w, "default path not found", http.StatusBadRequest)
			return
		}
		m.Entries[""] = e
	}

	writeText(w, srv.store.putManifest(m).String())
}

func (srv *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	hash, path, _ := splitAddr(chi.URLParam(r, "*"))
	base, ok := srv.store.manifest(hash)
	if !ok {
		http.Error(w, "manifest not found", http.StatusNotFound)
		return
	}
	if _, ok := base.Entries[path]; !ok {
		http.Error(w, "entry not found", http.StatusNotFound)
		return
	}

	m := base.clone()
	delete(m.Entries, path)
	writeText(w, srv.store.putManifest(m).String())
}

func (srv *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	hash, path, _ := splitAddr(chi.URLParam(r, "*"))
	m, ok := srv.store.manifest(hash)
	if !ok {
		http.Error(w, "manifest not found", http.StatusNotFound)
		return
	}

	if path == "" && strings.Contains(r.Header.Get(interfaces.HeaderAccept), tarfs.MediaType) {
		dir := interfaces.Directory{}
		for p, e := range m.Entries {
			if p == "" {
				continue
			}
			data, _ := srv.store.blob(e.Hash)
			dir[p] = interfaces.DirectoryEntry{Data: data, ContentType: e.ContentType, Size: e.Size}
		}
		w.Header().Set(interfaces.HeaderContentType, tarfs.MediaType)
		w.WriteHeader(http.StatusOK)
		if err := tarfs.WriteTar(w, dir); err != nil {
			srv.log.Error("Failed to write tar", "err", err)
		}
		return
	}

	e, ok := m.Entries[path]
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	data, _ := srv.store.blob(e.Hash)
	if e.ContentType != "" {
		w.Header().Set(interfaces.HeaderContentType, e.ContentType)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (srv *Server) handleList(w http.ResponseWriter, r *http.Request) {
	hash, prefix, _ := splitAddr(chi.URLParam(r, "*"))
	m, ok := srv.store.manifest(hash)
	if !ok {
		http.Error(w, "manifest not found", http.StatusNotFound)
		return
	}
	writeJSON(w, srv.store.list(m, prefix))
}

func (srv *Server) handleHash(w http.ResponseWriter, r *http.Request) {
	hash, ok := srv.store.domain(chi.URLParam(r, "*"))
	if !ok {
		http.Error(w, "domain not found", http.StatusNotFound)
		return
	}
	writeText(w, hash.String())
}

// feedID extracts the topic and user a feed request addresses.
func feedID(r *http.Request) (string, string, bool) {
	q := r.URL.Query()
	topic := q.Get(protocol.ParamTopic)
	if topic == "" && q.Get(protocol.ParamName) != "" {
		topic = TopicFromName(q.Get(protocol.ParamName))
	}
	user := q.Get(protocol.ParamUser)
	return topic, user, topic != "" && user != ""
}

func (srv *Server) handleFeedGet(w http.ResponseWriter, r *http.Request) {
	topic, user, ok := feedID(r)
	if !ok {
		http.Error(w, "missing feed topic or user", http.StatusBadRequest)
		return
	}
	latest, exists := srv.store.latestFeed(topic, user)

	if r.URL.Query().Get(protocol.FlagMeta) == "1" {
		next := uint64(srv.store.now().Unix())
		if exists && next <= latest.time {
			next = latest.time + 1
		}
		writeJSON(w, interfaces.FeedUpdateRequest{
			Feed:  interfaces.Feed{Topic: topic, User: user},
			Epoch: interfaces.Epoch{Time: next, Level: DefaultFeedLevel},
		})
		return
	}

	if !exists {
		http.Error(w, "feed has no updates", http.StatusNotFound)
		return
	}
	w.Header().Set(interfaces.HeaderContentType, "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	w.Write(latest.data)
}

func (srv *Server) handleFeedPost(w http.ResponseWriter, r *http.Request) {
	topic, user, ok := feedID(r)
	if !ok {
		http.Error(w, "missing feed topic or user", http.StatusBadRequest)
		return
	}
	q := r.URL.Query()

	if q.Get(protocol.FlagManifest) == "1" {
		m := &manifest{Entries: map[string]manifestEntry{
			"": srv.store.newEntry([]byte(feedKey(topic, user)), "application/bzz-feed"),
		}}
		writeJSON(w, srv.store.putManifest(m).String())
		return
	}

	timeValue, err := strconv.ParseUint(q.Get(protocol.ParamTime), 10, 64)
	if err != nil {
		http.Error(w, "invalid time", http.StatusBadRequest)
		return
	}
	level, err := strconv.ParseUint(q.Get(protocol.ParamLevel), 10, 8)
	if err != nil {
		http.Error(w, "invalid level", http.StatusBadRequest)
		return
	}
	version, err := strconv.ParseUint(q.Get(protocol.ParamProtocolVersion), 10, 8)
	if err != nil {
		http.Error(w, "invalid protocol version", http.StatusBadRequest)
		return
	}
	signature, err := hexutil.Decode(q.Get(protocol.ParamSignature))
	if err != nil {
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	meta := &interfaces.FeedUpdateRequest{
		Feed:            interfaces.Feed{Topic: topic, User: user},
		Epoch:           interfaces.Epoch{Time: timeValue, Level: uint8(level)},
		ProtocolVersion: uint8(version),
	}
	d, err := digest.FeedDigest(meta, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pub, err := crypto.SigToPub(hexutil.MustDecode(d), signature)
	if err != nil || crypto.PubkeyToAddress(*pub) != common.HexToAddress(user) {
		http.Error(w, "signature does not match feed user", http.StatusUnauthorized)
		return
	}

	if latest, exists := srv.store.latestFeed(topic, user); exists && timeValue <= latest.time {
		http.Error(w, "stale feed update", http.StatusConflict)
		return
	}

	srv.store.putFeed(topic, user, feedUpdate{time: timeValue, level: uint8(level), data: data})
	srv.log.Debug("Accepted feed update",
		slog.String("topic", topic),
		slog.String("user", user),
		slog.Uint64("time", timeValue))
	w.WriteHeader(http.StatusOK)
}
