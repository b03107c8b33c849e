package handler

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/durationpb"

	"github.com/dtroode/neoarcana-server/internal/model"
)

const errorDomain = "neoarcana"

func handleError(err error) error {
	var quotaErr *model.QuotaExceededError
	if errors.As(err, &quotaErr) {
		st := status.New(codes.ResourceExhausted, quotaErr.Error())
		detailed, detailErr := st.WithDetails(
			&errdetails.RetryInfo{RetryDelay: durationpb.New(quotaErr.RetryAfter)},
			&errdetails.ErrorInfo{
				Reason:   "QUOTA_EXCEEDED",
				Domain:   errorDomain,
				Metadata: map[string]string{"reading_type": string(quotaErr.ReadingType)},
			},
		)
		if detailErr != nil {
			return st.Err()
		}
		return detailed.Err()
	}

	switch {
	case errors.Is(err, model.ErrInvalidCode):
		return status.Error(codes.InvalidArgument, "invalid poster code")
	case errors.Is(err, model.ErrAlreadyRegistered):
		return status.Error(codes.AlreadyExists, "poster already registered")
	case errors.Is(err, model.ErrUserNotFound):
		return status.Error(codes.NotFound, "user not found")
	case errors.Is(err, model.ErrInvalidArgument), errors.Is(err, model.ErrInvalidReadingType):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
