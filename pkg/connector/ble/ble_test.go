package ble_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sinilink-community/amplifier-command/mocks"
	"github.com/sinilink-community/amplifier-command/pkg/connector/ble"
	"github.com/sinilink-community/amplifier-command/pkg/protocol"
)

var _ = Describe("Connection", func() {
	var (
		ctrl    *gomock.Controller
		adapter *mocks.BLEAdapter
		device  *mocks.BLEDevice
		service *mocks.BLEService
		command *mocks.BLECharacteristic
		beacon  *ble.Beacon
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		adapter = mocks.NewBLEAdapter(ctrl)
		device = mocks.NewBLEDevice(ctrl)
		service = mocks.NewBLEService(ctrl)
		command = mocks.NewBLECharacteristic(ctrl)
		beacon = &ble.Beacon{
			Address:     "AA:BB:CC:DD:EE:FF",
			LocalName:   "Sinilink-AMP",
			RSSI:        -42,
			Connectable: true,
		}
		DeferCleanup(func() {
			ctrl.Finish()
		})
	})

	connect := func() *ble.Connection {
		adapter.EXPECT().Connect(gomock.Any(), beacon).Return(device, nil)
		device.EXPECT().Service(gomock.Any(), protocol.ServiceUUID).Return(service, nil)
		service.EXPECT().Characteristic(protocol.CommandUUID).Return(command, nil)
		conn, err := ble.NewConnectionFromBeacon(context.Background(), beacon, adapter)
		Expect(err).ToNot(HaveOccurred())
		return conn
	}

	Describe("NewConnectionFromBeacon", func() {
		It("discovers the amplifier service and command characteristic", func() {
			conn := connect()
			Expect(conn.Address()).To(Equal(beacon.Address))
		})

		It("rejects non-connectable beacons without dialing", func() {
			beacon.Connectable = false
			_, err := ble.NewConnectionFromBeacon(context.Background(), beacon, adapter)
			Expect(err).To(MatchError(ContainSubstring("not connectable")))
		})

		It("closes the device when service discovery fails", func() {
			adapter.EXPECT().Connect(gomock.Any(), beacon).Return(device, nil)
			device.EXPECT().Service(gomock.Any(), protocol.ServiceUUID).Return(nil, errors.New("no such service"))
			device.EXPECT().Close().Return(nil)
			_, err := ble.NewConnectionFromBeacon(context.Background(), beacon, adapter)
			Expect(err).To(HaveOccurred())
		})

		It("closes the device when the command characteristic is missing", func() {
			adapter.EXPECT().Connect(gomock.Any(), beacon).Return(device, nil)
			device.EXPECT().Service(gomock.Any(), protocol.ServiceUUID).Return(service, nil)
			service.EXPECT().Characteristic(protocol.CommandUUID).Return(nil, errors.New("not found"))
			device.EXPECT().Close().Return(nil)
			_, err := ble.NewConnectionFromBeacon(context.Background(), beacon, adapter)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("NewConnection", func() {
		It("reports DeviceNotFound when the scan comes up empty", func() {
			adapter.EXPECT().ScanBeacon(gomock.Any(), beacon.Address).Return(nil, context.DeadlineExceeded)
			_, err := ble.NewConnection(context.Background(), beacon.Address, adapter)
			Expect(errors.Is(err, protocol.ErrDeviceNotFound)).To(BeTrue())
		})
	})

	Describe("WriteCommand", func() {
		It("writes the frame and verifies the length", func() {
			conn := connect()
			frame := protocol.EncodeInputSelect(0x16)
			command.EXPECT().Write(frame).Return(len(frame), nil)
			Expect(conn.WriteCommand(context.Background(), frame)).To(Succeed())
		})

		It("fails on short writes", func() {
			conn := connect()
			frame := protocol.EncodeInputSelect(0x16)
			command.EXPECT().Write(frame).Return(2, nil)
			Expect(conn.WriteCommand(context.Background(), frame)).ToNot(Succeed())
		})

		It("does not touch the link when the context is already done", func() {
			conn := connect()
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			Expect(conn.WriteCommand(ctx, []byte{0x7e})).To(MatchError(context.Canceled))
		})
	})

	Describe("ReadCommand", func() {
		It("reads the command characteristic and discards the payload", func() {
			conn := connect()
			command.EXPECT().Read().Return([]byte{0x01, 0x02}, nil)
			Expect(conn.ReadCommand(context.Background())).To(Succeed())
		})
	})

	Describe("Subscribe and Close", func() {
		It("subscribes to the status characteristic and unsubscribes on close", func() {
			conn := connect()
			handler := func([]byte) {}
			service.EXPECT().Notify(protocol.StatusUUID, gomock.Any()).Return(nil)
			Expect(conn.Subscribe(handler)).To(Succeed())

			service.EXPECT().StopNotify(protocol.StatusUUID).Return(nil)
			device.EXPECT().Close().Return(nil)
			Expect(conn.Close()).To(Succeed())

			// Second close is a no-op.
			Expect(conn.Close()).To(Succeed())
		})
	})
})

var _ = Describe("ScanAmplifiers", func() {
	It("folds duplicate advertisements and honors the limit", func() {
		ctrl := gomock.NewController(GinkgoT())
		defer ctrl.Finish()
		adapter := mocks.NewBLEAdapter(ctrl)

		adapter.EXPECT().ScanAmplifiers(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, found func(*ble.Beacon)) error {
				found(&ble.Beacon{Address: "11:11:11:11:11:11", Connectable: true})
				found(&ble.Beacon{Address: "11:11:11:11:11:11", Connectable: true})
				found(&ble.Beacon{Address: "22:22:22:22:22:22", Connectable: true})
				<-ctx.Done()
				return ctx.Err()
			})

		beacons, err := ble.ScanAmplifiers(context.Background(), adapter, 2)
		Expect(err).ToNot(HaveOccurred())
		Expect(beacons).To(HaveLen(2))
		Expect(beacons[0].Address).To(Equal("11:11:11:11:11:11"))
		Expect(beacons[1].Address).To(Equal("22:22:22:22:22:22"))
	})
})
