// Code generated by zenrpc v2.3.1; DO NOT EDIT.

package rpc

import (
	"context"
	"encoding/json"

	"github.com/vmkteam/zenrpc/v2"
	"github.com/vmkteam/zenrpc/v2/smd"
)

var RPC = struct {
	ModerationService struct{ Queue, Approve, Reject, Flag string }
}{
	ModerationService: struct{ Queue, Approve, Reject, Flag string }{
		Queue:   "queue",
		Approve: "approve",
		Reject:  "reject",
		Flag:    "flag",
	},
}

func (ModerationService) SMD() smd.ServiceInfo {
	return smd.ServiceInfo{
		Methods: map[string]smd.Service{
			"Queue": {
				Description: `Queue lists articles awaiting moderation, newest first.`,
				Parameters: []smd.JSONSchema{
					{
						Name:     "req",
						Type:     smd.Object,
						TypeName: "QueueRequest",
						Properties: smd.PropertyList{
							{
								Name:        "page",
								Optional:    true,
								Description: `page=1 page number (1-based)`,
								Type:        smd.Integer,
							},
							{
								Name:        "pageSize",
								Optional:    true,
								Description: `pageSize=10 items per page`,
								Type:        smd.Integer,
							},
						},
					},
				},
				Returns: smd.JSONSchema{
					Description: `pending articles`,
					Type:        smd.Array,
					TypeName:    "[]Article",
					Items: map[string]string{
						"$ref": "#/definitions/Article",
					},
					Definitions: map[string]smd.Definition{
						"Article": {
							Type: "object",
							Properties: smd.PropertyList{
								{
									Name: "articleId",
									Type: smd.Integer,
								},
								{
									Name: "authorId",
									Type: smd.Integer,
								},
								{
									Name: "title",
									Type: smd.String,
								},
								{
									Name: "status",
									Type: smd.String,
								},
								{
									Name: "reviewerComment",
									Type: smd.String,
								},
								{
									Name:     "scheduledPublishAt",
									Optional: true,
									Type:     smd.String,
								},
								{
									Name:     "publishedAt",
									Optional: true,
									Type:     smd.String,
								},
								{
									Name: "createdAt",
									Type: smd.String,
								},
							},
						},
					},
				},
				Errors: map[int]string{
					500: "internal server error",
				},
			},
			"Approve": {
				Description: `Approve publishes a pending article.`,
				Parameters: []smd.JSONSchema{
					{
						Name:     "req",
						Type:     smd.Object,
						TypeName: "TransitionRequest",
						Properties: smd.PropertyList{
							{
								Name:        "id",
								Description: `id article numeric ID`,
								Type:        smd.Integer,
							},
							{
								Name:        "comment",
								Description: `comment reviewer comment shown to the author`,
								Type:        smd.String,
							},
						},
					},
				},
				Returns: smd.JSONSchema{
					Description: `committed transition`,
					Optional:    true,
					Type:        smd.Object,
					TypeName:    "TransitionResult",
					Properties: smd.PropertyList{
						{
							Name: "article",
							Ref:  "#/definitions/Article",
							Type: smd.Object,
						},
						{
							Name: "fromStatus",
							Type: smd.String,
						},
						{
							Name: "toStatus",
							Type: smd.String,
						},
						{
							Name: "changed",
							Type: smd.Boolean,
						},
					},
					Definitions: map[string]smd.Definition{
						"Article": {
							Type: "object",
							Properties: smd.PropertyList{
								{
									Name: "articleId",
									Type: smd.Integer,
								},
								{
									Name: "authorId",
									Type: smd.Integer,
								},
								{
									Name: "title",
									Type: smd.String,
								},
								{
									Name: "status",
									Type: smd.String,
								},
								{
									Name: "reviewerComment",
									Type: smd.String,
								},
								{
									Name:     "scheduledPublishAt",
									Optional: true,
									Type:     smd.String,
								},
								{
									Name:     "publishedAt",
									Optional: true,
									Type:     smd.String,
								},
								{
									Name: "createdAt",
									Type: smd.String,
								},
							},
						},
					},
				},
				Errors: map[int]string{
					404: "article not found",
					409: "article was changed concurrently",
					422: "transition not allowed",
					500: "internal server error",
				},
			},
			"Reject": {
				Description: `Reject declines an article with a reviewer comment.`,
				Parameters: []smd.JSONSchema{
					{
						Name:     "req",
						Type:     smd.Object,
						TypeName: "TransitionRequest",
						Properties: smd.PropertyList{
							{
								Name:        "id",
								Description: `id article numeric ID`,
								Type:        smd.Integer,
							},
							{
								Name:        "comment",
								Description: `comment reviewer comment shown to the author`,
								Type:        smd.String,
							},
						},
					},
				},
				Returns: smd.JSONSchema{
					Description: `committed transition`,
					Optional:    true,
					Type:        smd.Object,
					TypeName:    "TransitionResult",
					Properties: smd.PropertyList{
						{
							Name: "article",
							Ref:  "#/definitions/Article",
							Type: smd.Object,
						},
						{
							Name: "fromStatus",
							Type: smd.String,
						},
						{
							Name: "toStatus",
							Type: smd.String,
						},
						{
							Name: "changed",
							Type: smd.Boolean,
						},
					},
					Definitions: map[string]smd.Definition{
						"Article": {
							Type: "object",
							Properties: smd.PropertyList{
								{
									Name: "articleId",
									Type: smd.Integer,
								},
								{
									Name: "authorId",
									Type: smd.Integer,
								},
								{
									Name: "title",
									Type: smd.String,
								},
								{
									Name: "status",
									Type: smd.String,
								},
								{
									Name: "reviewerComment",
									Type: smd.String,
								},
								{
									Name:     "scheduledPublishAt",
									Optional: true,
									Type:     smd.String,
								},
								{
									Name:     "publishedAt",
									Optional: true,
									Type:     smd.String,
								},
								{
									Name: "createdAt",
									Type: smd.String,
								},
							},
						},
					},
				},
				Errors: map[int]string{
					404: "article not found",
					409: "article was changed concurrently",
					422: "transition not allowed",
					500: "internal server error",
				},
			},
			"Flag": {
				Description: `Flag marks an article for re-review.`,
				Parameters: []smd.JSONSchema{
					{
						Name:     "req",
						Type:     smd.Object,
						TypeName: "TransitionRequest",
						Properties: smd.PropertyList{
							{
								Name:        "id",
								Description: `id article numeric ID`,
								Type:        smd.Integer,
							},
							{
								Name:        "comment",
								Description: `comment reviewer comment shown to the author`,
								Type:        smd.String,
							},
						},
					},
				},
				Returns: smd.JSONSchema{
					Description: `committed transition`,
					Optional:    true,
					Type:        smd.Object,
					TypeName:    "TransitionResult",
					Properties: smd.PropertyList{
						{
							Name: "article",
							Ref:  "#/definitions/Article",
							Type: smd.Object,
						},
						{
							Name: "fromStatus",
							Type: smd.String,
						},
						{
							Name: "toStatus",
							Type: smd.String,
						},
						{
							Name: "changed",
							Type: smd.Boolean,
						},
					},
					Definitions: map[string]smd.Definition{
						"Article": {
							Type: "object",
							Properties: smd.PropertyList{
								{
									Name: "articleId",
									Type: smd.Integer,
								},
								{
									Name: "authorId",
									Type: smd.Integer,
								},
								{
									Name: "title",
									Type: smd.String,
								},
								{
									Name: "status",
									Type: smd.String,
								},
								{
									Name: "reviewerComment",
									Type: smd.String,
								},
								{
									Name:     "scheduledPublishAt",
									Optional: true,
									Type:     smd.String,
								},
								{
									Name:     "publishedAt",
									Optional: true,
									Type:     smd.String,
								},
								{
									Name: "createdAt",
									Type: smd.String,
								},
							},
						},
					},
				},
				Errors: map[int]string{
					404: "article not found",
					409: "article was changed concurrently",
					422: "transition not allowed",
					500: "internal server error",
				},
			},
		},
	}
}

// Invoke is as generated code from zenrpc cmd
func (s ModerationService) Invoke(ctx context.Context, method string, params json.RawMessage) zenrpc.Response {
	resp := zenrpc.Response{}
	var err error

	switch method {
	case RPC.ModerationService.Queue:
		var args = struct {
			Req QueueRequest `json:"req"`
		}{}

		if zenrpc.IsArray(params) {
			if params, err = zenrpc.ConvertToObject([]string{"req"}, params); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		if len(params) > 0 {
			if err := json.Unmarshal(params, &args); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		resp.Set(s.Queue(ctx, args.Req))

	case RPC.ModerationService.Approve:
		var args = struct {
			Req TransitionRequest `json:"req"`
		}{}

		if zenrpc.IsArray(params) {
			if params, err = zenrpc.ConvertToObject([]string{"req"}, params); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		if len(params) > 0 {
			if err := json.Unmarshal(params, &args); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		resp.Set(s.Approve(ctx, args.Req))

	case RPC.ModerationService.Reject:
		var args = struct {
			Req TransitionRequest `json:"req"`
		}{}

		if zenrpc.IsArray(params) {
			if params, err = zenrpc.ConvertToObject([]string{"req"}, params); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		if len(params) > 0 {
			if err := json.Unmarshal(params, &args); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		resp.Set(s.Reject(ctx, args.Req))

	case RPC.ModerationService.Flag:
		var args = struct {
			Req TransitionRequest `json:"req"`
		}{}

		if zenrpc.IsArray(params) {
			if params, err = zenrpc.ConvertToObject([]string{"req"}, params); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		if len(params) > 0 {
			if err := json.Unmarshal(params, &args); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		resp.Set(s.Flag(ctx, args.Req))

	default:
		resp = zenrpc.NewResponseError(nil, zenrpc.MethodNotFound, "", nil)
	}

	return resp
}
