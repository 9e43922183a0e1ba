package protocol_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sinilink-community/amplifier-command/pkg/protocol"
)

var _ = Describe("Codec", func() {
	Describe("EncodeVolumeSet", func() {
		It("produces a 15-byte frame whose last byte is the additive checksum", func() {
			for volume := uint8(protocol.VolumeMin); volume <= protocol.VolumeMax; volume++ {
				frame, err := protocol.EncodeVolumeSet(volume)
				Expect(err).ToNot(HaveOccurred())
				Expect(frame).To(HaveLen(15))
				Expect(frame[14]).To(Equal(protocol.Checksum(frame[:14])))
				Expect(frame[3]).To(Equal(volume))
			}
		})

		It("encodes volume 20 with checksum 0xbe", func() {
			frame, err := protocol.EncodeVolumeSet(20)
			Expect(err).ToNot(HaveOccurred())
			Expect(frame).To(Equal([]byte{
				0x7e, 0x0f, 0x1d, 0x14,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0xbe,
			}))
		})

		It("rejects out-of-range volume levels without producing a frame", func() {
			for _, volume := range []uint8{0, 32, 100, 255} {
				frame, err := protocol.EncodeVolumeSet(volume)
				Expect(err).To(MatchError(protocol.ErrInvalidVolume))
				Expect(frame).To(BeNil())
			}
		})
	})

	Describe("EncodeInputSelect", func() {
		It("produces a 5-byte frame with the additive checksum", func() {
			frame := protocol.EncodeInputSelect(0x14)
			Expect(frame).To(Equal([]byte{0x7e, 0x05, 0x14, 0x00, 0x97}))
		})

		It("passes device-defined codes through unvalidated", func() {
			frame := protocol.EncodeInputSelect(0xff)
			Expect(frame).To(HaveLen(5))
			Expect(frame[2]).To(Equal(uint8(0xff)))
			Expect(frame[4]).To(Equal(protocol.Checksum(frame[:4])))
		})
	})

	Describe("DecodeNotification", func() {
		It("reads input from byte 4 and volume from byte 5", func() {
			update := protocol.DecodeNotification([]byte{0x00, 0x00, 0x00, 0x00, 0x14, 0x0a})
			Expect(update.InputSet).To(BeTrue())
			Expect(update.Input).To(Equal(uint8(0x14)))
			Expect(update.VolumeSet).To(BeTrue())
			Expect(update.Volume).To(Equal(uint8(0x0a)))
		})

		It("reports only the input when the frame carries no volume byte", func() {
			update := protocol.DecodeNotification([]byte{0x00, 0x00, 0x00, 0x00, 0x16})
			Expect(update.InputSet).To(BeTrue())
			Expect(update.Input).To(Equal(uint8(0x16)))
			Expect(update.VolumeSet).To(BeFalse())
		})

		It("yields an empty update for short frames", func() {
			for _, frame := range [][]byte{nil, {}, {0x7e}, {0x7e, 0x05, 0x14}, {0, 0, 0, 0}} {
				update := protocol.DecodeNotification(frame)
				Expect(update.InputSet).To(BeFalse())
				Expect(update.VolumeSet).To(BeFalse())
			}
		})
	})

	Describe("Checksum", func() {
		It("truncates the byte sum to eight bits", func() {
			Expect(protocol.Checksum([]byte{0xff, 0xff, 0x03})).To(Equal(uint8(0x01)))
			Expect(protocol.Checksum(nil)).To(Equal(uint8(0)))
		})
	})
})
