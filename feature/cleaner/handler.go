package cleaner

import (
	"errors"

	"controller-cleaner/core/logger"
	"controller-cleaner/core/scan"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for controller scans.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the controller routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/controllers")
	group.Get("/", h.HandleList)
	group.Get("/discover", h.HandleDiscover)
	group.Post("/scan", h.HandleScanAll)
	group.Post("/clean", h.HandleCleanAll)
	group.Get("/:key", h.HandleGet)
	group.Delete("/:key", h.HandleRemove)
	group.Post("/:key/scan", h.HandleScan)
	group.Post("/:key/cancel", h.HandleCancel)
	group.Post("/:key/clean", h.HandleClean)
}

// HandleList returns every scan result.
// @Summary List Scan Results
// @Description Returns the scan results of every controller, newest first.
// @Tags controllers
// @Produce json
// @Success 200 {array} scan.Snapshot "Scan results"
// @Router /controllers [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	return c.JSON(h.service.List())
}

// HandleDiscover lists the controllers the store knows about.
// @Summary Discover Controllers
// @Description Lists the keys of every controller document in the configured store.
// @Tags controllers
// @Produce json
// @Success 200 {array} string "Controller keys"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /controllers/discover [get]
func (h *Handler) HandleDiscover(c *fiber.Ctx) error {
	keys, err := h.service.Discover(c.UserContext())
	if err != nil {
		return h.fail(c, "Controller discovery failed", err)
	}
	return c.JSON(keys)
}

// HandleScanAll scans every controller.
// @Summary Scan All Controllers
// @Description Replaces every result with a fresh scan. With wait=true the response is sent once all scans finish.
// @Tags controllers
// @Produce json
// @Param wait query bool false "Wait for the scans to finish"
// @Success 202 {array} scan.Snapshot "Started scans"
// @Success 200 {array} scan.Snapshot "Finished scans"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /controllers/scan [post]
func (h *Handler) HandleScanAll(c *fiber.Ctx) error {
	snaps, err := h.service.ScanAll(c.UserContext())
	if err != nil {
		return h.fail(c, "Scan failed", err)
	}
	if !c.QueryBool("wait") {
		return c.Status(fiber.StatusAccepted).JSON(snaps)
	}
	snaps, err = h.service.WaitAll(c.UserContext())
	if err != nil {
		return h.fail(c, "Scan wait failed", err)
	}
	return c.JSON(snaps)
}

// HandleCleanAll cleans every controller with obsolete sub-assets.
// @Summary Clean All Controllers
// @Description Waits for every scan, removes the obsolete sub-assets and saves the controllers.
// @Tags controllers
// @Produce json
// @Success 200 {array} scan.CleanupReport "Cleanup reports"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /controllers/clean [post]
func (h *Handler) HandleCleanAll(c *fiber.Ctx) error {
	reports, err := h.service.CleanAll(c.UserContext())
	if err != nil {
		l := logger.WithRayID(h.service.logger, c)
		l.Error("Clean all failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   err.Error(),
			"reports": reports,
		})
	}
	if reports == nil {
		reports = []*scan.CleanupReport{}
	}
	return c.JSON(reports)
}

// HandleGet returns the scan result of one controller.
// @Summary Get Scan Result
// @Tags controllers
// @Produce json
// @Param key path string true "Controller key"
// @Success 200 {object} scan.Snapshot "Scan result"
// @Failure 404 {object} map[string]string "Unknown controller"
// @Router /controllers/{key} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	snap, err := h.service.Get(c.Params("key"))
	if err != nil {
		return h.fail(c, "Get result failed", err)
	}
	return c.JSON(snap)
}

// HandleRemove drops the scan result of one controller.
// @Summary Remove Scan Result
// @Tags controllers
// @Param key path string true "Controller key"
// @Success 204 "Removed"
// @Failure 404 {object} map[string]string "Unknown controller"
// @Router /controllers/{key} [delete]
func (h *Handler) HandleRemove(c *fiber.Ctx) error {
	if err := h.service.Remove(c.Params("key")); err != nil {
		return h.fail(c, "Remove result failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleScan scans one controller.
// @Summary Scan Controller
// @Description Starts a fresh scan of one controller, replacing any previous result.
// @Tags controllers
// @Produce json
// @Param key path string true "Controller key"
// @Param wait query bool false "Wait for the scan to finish"
// @Success 202 {object} scan.Snapshot "Started scan"
// @Success 200 {object} scan.Snapshot "Finished scan"
// @Failure 404 {object} map[string]string "Unknown controller"
// @Router /controllers/{key}/scan [post]
func (h *Handler) HandleScan(c *fiber.Ctx) error {
	key := c.Params("key")
	snap, err := h.service.ScanOne(c.UserContext(), key)
	if err != nil {
		return h.fail(c, "Scan failed", err)
	}
	if !c.QueryBool("wait") {
		return c.Status(fiber.StatusAccepted).JSON(snap)
	}
	snap, err = h.service.Wait(c.UserContext(), key)
	if err != nil {
		return h.fail(c, "Scan wait failed", err)
	}
	return c.JSON(snap)
}

// HandleCancel cancels the running scan of one controller.
// @Summary Cancel Scan
// @Tags controllers
// @Produce json
// @Param key path string true "Controller key"
// @Success 200 {object} scan.Snapshot "Scan result"
// @Failure 404 {object} map[string]string "Unknown controller"
// @Router /controllers/{key}/cancel [post]
func (h *Handler) HandleCancel(c *fiber.Ctx) error {
	snap, err := h.service.Cancel(c.Params("key"))
	if err != nil {
		return h.fail(c, "Cancel failed", err)
	}
	return c.JSON(snap)
}

// HandleClean removes the obsolete sub-assets of one controller.
// @Summary Clean Controller
// @Description Removes the obsolete sub-assets found by the last scan, repairs transitions, saves the controller and rescans it.
// @Tags controllers
// @Produce json
// @Param key path string true "Controller key"
// @Success 200 {object} scan.CleanupReport "Cleanup report"
// @Failure 404 {object} map[string]string "Unknown controller"
// @Failure 409 {object} map[string]string "Nothing to clean"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /controllers/{key}/clean [post]
func (h *Handler) HandleClean(c *fiber.Ctx) error {
	report, err := h.service.Clean(c.UserContext(), c.Params("key"))
	if err != nil && report == nil {
		return h.fail(c, "Clean failed", err)
	}
	if err != nil {
		l := logger.WithRayID(h.service.logger, c)
		l.Error("Clean finished with errors", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":  err.Error(),
			"report": report,
		})
	}
	return c.JSON(report)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, scan.ErrUnknownController):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrNothingToClean):
		status = fiber.StatusConflict
	}

	l := logger.WithRayID(h.service.logger, c)
	if status == fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Debug(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
