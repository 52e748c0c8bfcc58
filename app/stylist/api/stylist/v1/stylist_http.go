package v1

import (
	context "context"
	"io"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	http "github.com/go-kratos/kratos/v2/transport/http"
)

const (
	OperationStylistAnalyzeStyle = "/stylist.v1.Stylist/AnalyzeStyle"
	OperationStylistUploadStyle  = "/stylist.v1.Stylist/UploadStyle"
	OperationStylistAskStylist   = "/stylist.v1.Stylist/AskStylist"
	OperationStylistNearbyStores = "/stylist.v1.Stylist/NearbyStores"
)

// multipartMemory 解析 multipart 时保存在内存中的上限，超出部分落盘
const multipartMemory = 8 << 20

type StylistHTTPServer interface {
	AnalyzeStyle(context.Context, *AnalyzeStyleRequest) (*AnalysisReply, error)
	UploadStyle(context.Context, *UploadStyleRequest) (*AnalysisReply, error)
	AskStylist(context.Context, *AskStylistRequest) (*AnalysisReply, error)
	NearbyStores(context.Context, *NearbyStoresRequest) (*NearbyStoresReply, error)
}

func RegisterStylistHTTPServer(s *http.Server, srv StylistHTTPServer) {
	r := s.Route("/")
	r.POST("/analyze-style", _Stylist_AnalyzeStyle0_HTTP_Handler(srv))
	r.POST("/analyze-style/upload", _Stylist_UploadStyle0_HTTP_Handler(srv))
	r.POST("/ask-stylist", _Stylist_AskStylist0_HTTP_Handler(srv))
	r.POST("/nearby-stores", _Stylist_NearbyStores0_HTTP_Handler(srv))
}

func _Stylist_AnalyzeStyle0_HTTP_Handler(srv StylistHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in AnalyzeStyleRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationStylistAnalyzeStyle)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.AnalyzeStyle(ctx, req.(*AnalyzeStyleRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*AnalysisReply)
		return ctx.Result(200, reply)
	}
}

func _Stylist_UploadStyle0_HTTP_Handler(srv StylistHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in UploadStyleRequest
		if err := bindUpload(ctx, &in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationStylistUploadStyle)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.UploadStyle(ctx, req.(*UploadStyleRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*AnalysisReply)
		return ctx.Result(200, reply)
	}
}

func _Stylist_AskStylist0_HTTP_Handler(srv StylistHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in AskStylistRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationStylistAskStylist)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.AskStylist(ctx, req.(*AskStylistRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*AnalysisReply)
		return ctx.Result(200, reply)
	}
}

func _Stylist_NearbyStores0_HTTP_Handler(srv StylistHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in NearbyStoresRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationStylistNearbyStores)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.NearbyStores(ctx, req.(*NearbyStoresRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*NearbyStoresReply)
		return ctx.Result(200, reply)
	}
}

// bindUpload multipart 请求读取 photo 文件字段，其它请求按 JSON 绑定
func bindUpload(ctx http.Context, in *UploadStyleRequest) error {
	req := ctx.Request()
	if !strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data") {
		return ctx.Bind(in)
	}

	if err := req.ParseMultipartForm(multipartMemory); err != nil {
		return errors.BadRequest("INVALID_UPLOAD", err.Error())
	}
	file, header, err := req.FormFile("photo")
	if err != nil {
		return errors.BadRequest("INVALID_UPLOAD", "photo file is required")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return errors.BadRequest("INVALID_UPLOAD", err.Error())
	}

	in.Photo = data
	in.MimeType = header.Header.Get("Content-Type")
	in.Language = req.FormValue("language")
	return nil
}
