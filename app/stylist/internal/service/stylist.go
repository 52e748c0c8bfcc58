package service

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	pb "github.com/iWorld-y/outfit_radar/app/stylist/api/stylist/v1"
	"github.com/iWorld-y/outfit_radar/app/stylist/internal/usecase"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/model"
)

type StylistService struct {
	uc  *usecase.StylistUseCase
	log *log.Helper
}

func NewStylistService(uc *usecase.StylistUseCase, logger log.Logger) *StylistService {
	return &StylistService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

func (s *StylistService) AnalyzeStyle(ctx context.Context, req *pb.AnalyzeStyleRequest) (*pb.AnalysisReply, error) {
	res, err := s.uc.AnalyzeURL(ctx, req.PhotoUrl, req.Language)
	if err != nil {
		return nil, err
	}
	return toAnalysisReply(res), nil
}

func (s *StylistService) UploadStyle(ctx context.Context, req *pb.UploadStyleRequest) (*pb.AnalysisReply, error) {
	data, mimeType := req.Photo, req.MimeType
	if len(data) == 0 && req.PhotoBase64 != "" {
		var err error
		data, mimeType, err = decodeBase64Photo(req.PhotoBase64, mimeType)
		if err != nil {
			return nil, errors.BadRequest(usecase.ReasonInvalidArgument, "photoBase64 is not valid base64")
		}
	}

	res, err := s.uc.AnalyzeUpload(ctx, data, mimeType, req.Language)
	if err != nil {
		return nil, err
	}
	return toAnalysisReply(res), nil
}

func (s *StylistService) AskStylist(ctx context.Context, req *pb.AskStylistRequest) (*pb.AnalysisReply, error) {
	res, err := s.uc.Ask(ctx, req.Question, req.Language)
	if err != nil {
		return nil, err
	}
	return toAnalysisReply(res), nil
}

func (s *StylistService) NearbyStores(ctx context.Context, req *pb.NearbyStoresRequest) (*pb.NearbyStoresReply, error) {
	records, err := s.uc.NearbyStores(ctx, req.Latitude, req.Longitude, req.Language)
	if err != nil {
		return nil, err
	}

	stores := make([]*pb.Store, 0, len(records))
	for _, r := range records {
		stores = append(stores, &pb.Store{
			Id:               r.ID,
			Name:             r.Name,
			Address:          r.Address,
			Distance:         r.DistanceMeters,
			IsOpen:           r.IsOpenNow,
			OpeningHoursText: r.OpeningHoursText,
			Rating:           r.Rating,
			PlaceID:          r.ID,
			SearchKeyword:    r.SearchKeyword,
		})
	}
	s.log.WithContext(ctx).Debugf("nearby stores: %d", len(stores))

	return &pb.NearbyStoresReply{Stores: stores}, nil
}

func toAnalysisReply(res *model.OutfitAnalysis) *pb.AnalysisReply {
	sections := make([]*pb.Section, 0, len(res.Sections))
	for _, sec := range res.Sections {
		var content interface{} = sec.Content.Text
		if sec.Content.IsList() {
			content = sec.Content.Items
		}
		sections = append(sections, &pb.Section{
			Title:   sec.Title,
			Icon:    sec.Icon,
			Content: content,
		})
	}
	return &pb.AnalysisReply{
		Success:            true,
		Analysis:           res.Analysis,
		StructuredAnalysis: sections,
	}
}

// decodeBase64Photo 兼容 "data:image/jpeg;base64,..." 形式，此时从前缀取 MIME
func decodeBase64Photo(s, mimeType string) ([]byte, string, error) {
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		header, payload, found := strings.Cut(rest, ",")
		if found {
			if mimeType == "" {
				mimeType, _, _ = strings.Cut(header, ";")
			}
			s = payload
		}
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, "", err
	}
	return data, mimeType, nil
}
