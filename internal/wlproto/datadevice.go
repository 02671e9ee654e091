package wlproto

import (
	"github.com/perceptia/wlfrontend/internal/wire"
	"github.com/perceptia/wlfrontend/internal/wlfacade"
	"github.com/perceptia/wlfrontend/internal/wlgateway"
	"github.com/perceptia/wlfrontend/internal/wltransfer"
)

// DeviceManager is the wl_data_device_manager global's bind-time
// resource.
type DeviceManager struct {
	resourceBase
	facade *wlfacade.Facade
}

func BindDeviceManager(facade *wlfacade.Facade) wire.BindFunc {
	return func(client wire.Client, version, objectID uint32) {
		_ = &DeviceManager{resourceBase: resourceBase{client: client, id: objectID, version: version}, facade: facade}
	}
}

// CreateDataSource handles wl_data_device_manager.create_data_source.
func (dm *DeviceManager) CreateDataSource(newID uint32) *DataSource {
	ds := &DataSource{resourceBase: resourceBase{client: dm.client, id: newID, version: dm.version}, facade: dm.facade}
	ds.transfer = dm.facade.CreateTransfer(ds)
	return ds
}

// GetDataDevice handles wl_data_device_manager.get_data_device.
func (dm *DeviceManager) GetDataDevice(newID uint32) *DataDevice {
	dd := &DataDevice{resourceBase: resourceBase{client: dm.client, id: newID, version: dm.version}, facade: dm.facade}
	dm.facade.AddDataDeviceResource(dd)
	return dd
}

// DataSource is the wl_data_source resource — the client side of a
// clipboard offer.
type DataSource struct {
	resourceBase
	facade   *wlfacade.Facade
	transfer *wltransfer.Transfer
}

// Offer handles wl_data_source.offer.
func (ds *DataSource) Offer(mimeType string) {
	ds.facade.AddMimeType(ds.transfer, mimeType)
}

func (ds *DataSource) SendSend(mimeType string, fd uintptr) {
	sendLog("wl_data_source", "send", ds.id, mimeType, fd)
}

func (ds *DataSource) Destroy() {
	ds.facade.DestroyTransfer(ds.transfer)
}

// DataDevice is the wl_data_device resource.
type DataDevice struct {
	resourceBase
	facade *wlfacade.Facade
}

// SetSelection handles wl_data_device.set_selection — the only
// meaningful request on this interface.
func (dd *DataDevice) SetSelection(source *DataSource, serial uint32) {
	dd.facade.SendSelection(source.transfer)
}

// StartDrag handles wl_data_device.start_drag: accepted and ignored —
// drag-and-drop transport is out of scope for this frontend.
func (dd *DataDevice) StartDrag() {}

func (dd *DataDevice) SendDataOffer(offer wlgateway.DataOfferResource) {
	sendLog("wl_data_device", "data_offer", dd.id)
}

func (dd *DataDevice) SendSelection(offer wlgateway.DataOfferResource) {
	sendLog("wl_data_device", "selection", dd.id)
}

// DataOffer is the wl_data_offer resource: the recipient side of a
// clipboard offer, minted fresh per send_selection broadcast. It has
// no source reference of its own — receive() forwards against
// whichever transfer is current on the Frontend State, since at most
// one current transfer exists at a time.
type DataOffer struct {
	resourceBase
	facade *wlfacade.Facade
}

func (o *DataOffer) SendOffer(mimeType string) {
	sendLog("wl_data_offer", "offer", o.id, mimeType)
}

func (o *DataOffer) SendAction(action uint32) {
	sendLog("wl_data_offer", "action", o.id, action)
}

// Receive handles wl_data_offer.receive: forward to the current
// transfer's source, then close the frontend's fd copy so the source
// observes EOF.
func (o *DataOffer) Receive(mimeType string, fd uintptr, closeFD func(uintptr)) {
	if o.facade.State.CurrentTransfer == nil {
		return
	}
	o.facade.ReceiveDataOffer(o.facade.State.CurrentTransfer, mimeType, fd, closeFD)
}

// OfferFactory implements wlgateway.DataOfferFactory, minting a fresh
// DataOffer at the requesting device's negotiated version.
type OfferFactory struct {
	Facade *wlfacade.Facade
}

func (f *OfferFactory) NewDataOffer(device wlgateway.DataDeviceResource, version uint32) wlgateway.DataOfferResource {
	dd, _ := device.(*DataDevice)
	var client wire.Client
	if dd != nil {
		client = dd.client
	}
	return &DataOffer{resourceBase: resourceBase{client: client, version: version}, facade: f.Facade}
}
