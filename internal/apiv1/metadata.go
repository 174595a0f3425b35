package apiv1

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/willie68/GoTikaMeta/internal/api"
	"github.com/willie68/GoTikaMeta/internal/errs"
	"github.com/willie68/GoTikaMeta/internal/metadata"
	"github.com/willie68/GoTikaMeta/internal/serror"
	"github.com/willie68/GoTikaMeta/internal/services/interfaces"
	"github.com/willie68/GoTikaMeta/internal/utils"
	"github.com/willie68/GoTikaMeta/internal/utils/httputils"
	"github.com/willie68/GoTikaMeta/pkg/model"
)

const (
	statusSubpath   = "/status"
	extractSubpath  = "/extract"
	metadataSubpath = "/metadata"
	contentSubpath  = "/content"
	mimetypeSubpath = "/mimetype"
	filesSubpath    = "/files"
	searchSubpath   = "/search"

	hashParam = "hash"
)

// MetadataHandler the handler of all extraction endpoints
type MetadataHandler struct {
	srv            interfaces.MetadataService
	filenameHeader string
}

// NewMetadataHandler creates the handler for the metadata service
func NewMetadataHandler(srv interfaces.MetadataService, headerMapping map[string]string) *MetadataHandler {
	h := &MetadataHandler{
		srv:            srv,
		filenameHeader: "X-" + api.FilenameKey,
	}
	if fh, ok := headerMapping[api.FilenameKey]; ok && fh != "" {
		h.filenameHeader = fh
	}
	return h
}

// Routes the routes of the metadata handler
func (h *MetadataHandler) Routes() (string, *chi.Mux) {
	router := chi.NewRouter()
	router.Get(statusSubpath, h.GetStatus)
	router.Post(extractSubpath+"/files/{hash}", h.PostExtractFile)
	router.Post(extractSubpath+"/urls", h.PostExtractURL)
	router.Get(metadataSubpath+"/{hash}", h.GetMetadata)
	router.Delete(metadataSubpath+"/{hash}", h.DeleteMetadata)
	router.Post(contentSubpath+"/files/{hash}", h.PostContentFile)
	router.Post(contentSubpath+"/urls", h.PostContentURL)
	router.Post(mimetypeSubpath+"/files/{hash}", h.PostMimetypeFile)
	router.Post(mimetypeSubpath+"/urls", h.PostMimetypeURL)
	router.Post(filesSubpath, h.PostFile)
	router.Get(searchSubpath, h.GetSearch)
	return BaseURL, router
}

func getMetadataLocation(hash string) string {
	return fmt.Sprintf(BaseURL+metadataSubpath+"/%s", hash)
}

// GetStatus the readiness of the extraction
func (h *MetadataHandler) GetStatus(response http.ResponseWriter, request *http.Request) {
	render.JSON(response, request, h.srv.Status(request.Context()))
}

/*
PostExtractFile extracting the metadata of a stored file
path param:
hash: the content hash of the file
*/
func (h *MetadataHandler) PostExtractFile(response http.ResponseWriter, request *http.Request) {
	hash, err := hashParamOf(request)
	if err != nil {
		httputils.Err(response, request, err)
		return
	}
	h.extract(response, request, &model.FileResource{ContentHash: hash})
}

/*
PostExtractURL extracting the metadata of an url
body: {"id": 1, "url": "https://..."}
*/
func (h *MetadataHandler) PostExtractURL(response http.ResponseWriter, request *http.Request) {
	res, err := urlResource(request)
	if err != nil {
		httputils.Err(response, request, err)
		return
	}
	h.extract(response, request, res)
}

func (h *MetadataHandler) extract(response http.ResponseWriter, request *http.Request, res model.Resource) {
	r, err := h.srv.Extract(request.Context(), res)
	if err != nil {
		logger.Errorf("extraction of %s failed: %v", res.Ref(), err)
		httputils.Err(response, request, err)
		return
	}
	if r == nil {
		render.NoContent(response, request)
		return
	}
	httputils.Created(response, request, getMetadataLocation(r.ResourceHash), toResponse(r))
}

/*
GetMetadata getting the stored metadata
path param:
hash: the resource hash
*/
func (h *MetadataHandler) GetMetadata(response http.ResponseWriter, request *http.Request) {
	hash, err := httputils.Param(request, hashParam)
	if err != nil {
		httputils.Err(response, request, err)
		return
	}
	r, err := h.srv.Get(request.Context(), hash)
	if err != nil {
		if errs.IsNotFound(err) {
			httputils.Err(response, request, serror.NotFound("metadata", hash, err))
			return
		}
		httputils.Err(response, request, serror.InternalServerError(err))
		return
	}
	render.JSON(response, request, toResponse(r))
}

/*
DeleteMetadata removing the stored metadata
path param:
hash: the resource hash
*/
func (h *MetadataHandler) DeleteMetadata(response http.ResponseWriter, request *http.Request) {
	hash, err := httputils.Param(request, hashParam)
	if err != nil {
		httputils.Err(response, request, err)
		return
	}
	if err := h.srv.Delete(request.Context(), hash); err != nil {
		if errs.IsNotFound(err) {
			httputils.Err(response, request, serror.NotFound("metadata", hash, err))
			return
		}
		httputils.Err(response, request, serror.InternalServerError(err))
		return
	}
	render.NoContent(response, request)
}

// PostContentFile the text content of a stored file
func (h *MetadataHandler) PostContentFile(response http.ResponseWriter, request *http.Request) {
	hash, err := hashParamOf(request)
	if err != nil {
		httputils.Err(response, request, err)
		return
	}
	h.content(response, request, &model.FileResource{ContentHash: hash}, h.srv.Content)
}

// PostContentURL the text content of an url
func (h *MetadataHandler) PostContentURL(response http.ResponseWriter, request *http.Request) {
	res, err := urlResource(request)
	if err != nil {
		httputils.Err(response, request, err)
		return
	}
	h.content(response, request, res, h.srv.Content)
}

// PostMimetypeFile the detected mimetype of a stored file
func (h *MetadataHandler) PostMimetypeFile(response http.ResponseWriter, request *http.Request) {
	hash, err := hashParamOf(request)
	if err != nil {
		httputils.Err(response, request, err)
		return
	}
	h.content(response, request, &model.FileResource{ContentHash: hash}, h.srv.Mimetype)
}

// PostMimetypeURL the detected mimetype of an url
func (h *MetadataHandler) PostMimetypeURL(response http.ResponseWriter, request *http.Request) {
	res, err := urlResource(request)
	if err != nil {
		httputils.Err(response, request, err)
		return
	}
	h.content(response, request, res, h.srv.Mimetype)
}

type contentFunc func(ctx context.Context, res model.Resource) (string, error)

func (h *MetadataHandler) content(response http.ResponseWriter, request *http.Request, res model.Resource, fn contentFunc) {
	c, err := fn(request.Context(), res)
	if err != nil {
		httputils.Err(response, request, err)
		return
	}
	render.JSON(response, request, model.ContentResponse{
		ResourceHash: res.Ref(),
		Content:      c,
	})
}

/*
PostFile uploading a new file, either as multipart form with the field "file"
or as plain body with the filename in the filename header
*/
func (h *MetadataHandler) PostFile(response http.ResponseWriter, request *http.Request) {
	var filename string
	var f io.Reader
	if strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/form-data") {
		mpf, fileHeader, err := request.FormFile("file")
		if err != nil {
			httputils.Err(response, request, serror.BadRequest(err, "missing-file", "no file in form"))
			return
		}
		defer mpf.Close()
		filename = fileHeader.Filename
		f = mpf
	} else {
		defer request.Body.Close()
		filename = request.Header.Get(h.filenameHeader)
		f = request.Body
	}
	if filename == "" {
		filename = "data.bin"
	}
	u, err := h.srv.Upload(filename, f)
	if err != nil {
		httputils.Err(response, request, serror.InternalServerError(err))
		return
	}
	httputils.Created(response, request, u.ContentHash, u)
}

/*
GetSearch searching the metadata index
query param:
q: the query, syntax depends on the index
*/
func (h *MetadataHandler) GetSearch(response http.ResponseWriter, request *http.Request) {
	q := request.URL.Query().Get("q")
	if q == "" {
		httputils.Err(response, request, serror.BadRequest(nil, "missing-query", "query param q missing"))
		return
	}
	hashes, err := h.srv.Search(request.Context(), q)
	if err != nil {
		httputils.Err(response, request, serror.BadRequest(err, "search-error", "search failed"))
		return
	}
	render.JSON(response, request, model.SearchResponse{
		Query:  q,
		Hashes: hashes,
	})
}

func hashParamOf(request *http.Request) (string, error) {
	hash, err := httputils.Param(request, hashParam)
	if err != nil {
		return "", err
	}
	hash = strings.ToLower(hash)
	if !utils.IsContentHash(hash) {
		return "", serror.BadRequest(nil, "invalid-hash", fmt.Sprintf("not a content hash: %s", hash))
	}
	return hash, nil
}

func urlResource(request *http.Request) (*model.URLResource, error) {
	var res model.URLResource
	if err := httputils.Decode(request, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func toResponse(r *metadata.Record) model.MetadataResponse {
	return model.MetadataResponse{
		ResourceHash: r.ResourceHash,
		Variant:      string(r.Variant),
		Metadata:     r.GetRecord(),
	}
}
