package midi

import "github.com/pkg/errors"

func validateChannel(channel uint8) error {
	if channel > 15 {
		return errors.Wrapf(ErrInvalidArgument, "channel %d (0-15)", channel)
	}
	return nil
}

func validateDelta(delta uint32) error {
	if delta > MaxVLQ {
		return errors.Wrapf(ErrInvalidArgument, "delta %d exceeds %d", delta, MaxVLQ)
	}
	return nil
}

func validateStatus(status byte) error {
	if status < 0x80 {
		return errors.Wrapf(ErrInvalidArgument, "status byte %#02x (0x80-0xFF)", status)
	}
	return nil
}

func validateData(f Family, data []byte) error {
	if len(data) != f.DataLen() {
		return errors.Wrapf(ErrInvalidArgument, "%s takes %d data bytes, got %d", f, f.DataLen(), len(data))
	}
	for _, b := range data {
		if b > 0x7F {
			return errors.Wrapf(ErrInvalidArgument, "%s data byte %#02x (0-127)", f, b)
		}
	}
	return nil
}

func validateLength(n int) error {
	if n < 0 || uint64(n) > MaxVLQ {
		return errors.Wrapf(ErrInvalidArgument, "payload of %d bytes exceeds %d", n, MaxVLQ)
	}
	return nil
}

func validateMessage(msg Message) error {
	switch m := msg.(type) {
	case ChannelVoice:
		if !m.Family.Valid() {
			return errors.Wrapf(ErrInvalidArgument, "family %#02x", byte(m.Family))
		}
		if err := validateChannel(m.Channel); err != nil {
			return err
		}
		return validateData(m.Family, m.Data)
	case Meta:
		return validateLength(len(m.Payload))
	case SysEx:
		return validateLength(len(m.Payload))
	default:
		return errors.Wrapf(ErrInvalidArgument, "message %T", msg)
	}
}
