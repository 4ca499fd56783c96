package commands

import (
	"context"
	"fmt"
	"io"

	"draftPublisher/internal/cli/ui"
	"draftPublisher/internal/database"

	"go.uber.org/zap"
)

type UploadLister interface {
	ListUploads(ctx context.Context, limit, offset int) ([]database.Upload, error)
}

// UploadsHandler выводит журнал загрузок
type UploadsHandler struct {
	repo UploadLister
	out  io.Writer
	log  *zap.Logger
}

func NewUploadsHandler(repo UploadLister, out io.Writer, log *zap.Logger) *UploadsHandler {
	return &UploadsHandler{repo: repo, out: out, log: log}
}

func (h *UploadsHandler) List(ctx context.Context) {
	if h.repo == nil {
		fmt.Fprintln(h.out, ui.ColorGray+"Журнал загрузок отключен: не задан DB_HOST"+ui.ColorReset)
		return
	}
	uploads, err := h.repo.ListUploads(ctx, 50, 0)
	if err != nil {
		h.log.Error("Ошибка чтения журнала", zap.Error(err))
		fmt.Fprintln(h.out, ui.ColorRed+ui.IconCross+" Ошибка чтения журнала"+ui.ColorReset)
		return
	}

	fmt.Fprintln(h.out, "\n"+ui.ColorBold+ui.IconList+" Журнал загрузок:"+ui.ColorReset)
	fmt.Fprintln(h.out)
	for _, u := range uploads {
		fmt.Fprintf(h.out, "  "+ui.ColorBold+"%s"+ui.ColorReset+" "+ui.ColorCyan+"%s"+ui.ColorReset+"\n", u.Title, u.VideoID)
		fmt.Fprintf(h.out, "  "+ui.ColorGray+"└─"+ui.ColorReset+" %s "+ui.ColorGray+ui.IconTime+" %s"+ui.ColorReset+"\n",
			u.Path, u.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintln(h.out)
}
